package routes

import (
	"time"

	"siri-memberfund/internal/adapters/http/handlers"
	"siri-memberfund/internal/adapters/http/middleware"
	"siri-memberfund/internal/adapters/persistence/repositories"
	"siri-memberfund/internal/config"
	"siri-memberfund/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, syncService *services.SyncService) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	contribRepo := repositories.NewContributionRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	metaRepo := repositories.NewFundMetaRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo, metaRepo)
	contribService := services.NewContributionService(contribRepo, userRepo, metaRepo, cfg)
	loanService := services.NewLoanService(loanRepo, contribRepo, userRepo, metaRepo, cfg)
	fundService := services.NewFundService(userRepo, contribRepo, loanRepo, metaRepo, cfg)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	contribHandler := handlers.NewContributionHandler(contribService)
	loanHandler := handlers.NewLoanHandler(loanService)
	fundHandler := handlers.NewFundHandler(fundService)
	syncHandler := handlers.NewSyncHandler(syncService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Member registry routes. The registry changes rarely, so responses
	// may be cached briefly per user.
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.PrivateCacheHeaders(30 * time.Second))
	setupUserRoutes(userRoutes, userHandler, contribHandler)

	// Contribution ledger routes
	contribRoutes := apiV1.Group("/contributions")
	contribRoutes.Use(middleware.AuthMiddleware(cfg))
	setupContributionRoutes(contribRoutes, contribHandler)

	// Loan routes
	loanRoutes := apiV1.Group("/loans")
	loanRoutes.Use(middleware.AuthMiddleware(cfg))
	setupLoanRoutes(loanRoutes, loanHandler)

	// Fund routes. Pool figures are recomputed per read and never cached.
	fundRoutes := apiV1.Group("/fund")
	fundRoutes.Use(middleware.AuthMiddleware(cfg))
	fundRoutes.Use(middleware.NoCacheHeaders())
	setupFundRoutes(fundRoutes, fundHandler, loanHandler)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	setupDashboardRoutes(dashboardRoutes, fundHandler)

	// Sync routes (Admin only)
	syncRoutes := apiV1.Group("/sync")
	syncRoutes.Use(middleware.AuthMiddleware(cfg))
	syncRoutes.Use(middleware.AdminOnly())
	setupSyncRoutes(syncRoutes, syncHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes. Login is rate limited against credential guessing.
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupUserRoutes configures member registry routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler, contribHandler *handlers.ContributionHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", middleware.SelfOrAdmin("id"), handler.Get)
	router.Get("/:id/contributions", middleware.SelfOrAdmin("id"), contribHandler.ListByUser)

	// Admin only
	router.Post("/", middleware.AdminOnly(), handler.Create)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupContributionRoutes configures contribution ledger routes
func setupContributionRoutes(router fiber.Router, handler *handlers.ContributionHandler) {
	router.Get("/my", handler.ListMy)

	// Admin only
	router.Get("/", middleware.AdminOnly(), handler.List)
	router.Post("/", middleware.AdminOnly(), handler.Record)
}

// setupLoanRoutes configures loan lifecycle routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Post("/", handler.Request)
	router.Get("/", handler.List)
	router.Get("/my", handler.ListMy)
	router.Get("/:id", handler.Get)
	router.Get("/:id/installment", handler.PreviewInstallment)

	// Admin only
	router.Put("/:id/approve", middleware.AdminOnly(), handler.Approve)
	router.Put("/:id/reject", middleware.AdminOnly(), handler.Reject)
	router.Post("/:id/installment", middleware.AdminOnly(), handler.RecordInstallment)
}

// setupFundRoutes configures pool metrics and obligation routes
func setupFundRoutes(router fiber.Router, handler *handlers.FundHandler, loanHandler *handlers.LoanHandler) {
	router.Get("/metrics", handler.Metrics)
	router.Get("/obligations/my", loanHandler.Obligation)

	// Admin only
	router.Get("/obligations/community", middleware.AdminOnly(), loanHandler.CommunityObligation)
	router.Put("/bank-interest", middleware.AdminOnly(), handler.SetBankInterest)
}

// setupDashboardRoutes configures dashboard routes
func setupDashboardRoutes(router fiber.Router, handler *handlers.FundHandler) {
	router.Get("/", handler.Dashboard)
	router.Get("/member", handler.MemberDashboard)
	router.Get("/admin", middleware.AdminOnly(), handler.AdminDashboard)
}

// setupSyncRoutes configures ledger replication routes
func setupSyncRoutes(router fiber.Router, handler *handlers.SyncHandler) {
	router.Get("/status", handler.Status)
	router.Post("/push", handler.Push)
	router.Post("/pull", handler.Pull)
}
