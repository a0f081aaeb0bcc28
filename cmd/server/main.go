package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"siri-memberfund/internal/adapters/http/middleware"
	"siri-memberfund/internal/adapters/http/routes"
	"siri-memberfund/internal/adapters/persistence/models"
	"siri-memberfund/internal/adapters/persistence/repositories"
	"siri-memberfund/internal/config"
	"siri-memberfund/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the admin account, historical registry, and fund figures
	if cfg.Seed {
		if err := config.NewSeeder(db, cfg).Run(); err != nil {
			log.Printf("⚠️ Warning: Failed to seed database: %v", err)
		}
	}

	// Start the background ledger replication loop
	syncService := services.NewSyncService(
		db,
		repositories.NewSnapshotRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewContributionRepository(db),
		repositories.NewLoanRepository(db),
		repositories.NewFundMetaRepository(db),
		cfg,
	)
	if err := syncService.Start(); err != nil {
		log.Fatalf("❌ Failed to start ledger sync: %v", err)
	}
	defer syncService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Siri MemberFund API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg, syncService)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
