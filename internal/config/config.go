package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Fund     FundConfig
	Sync     SyncConfig
	Admin    AdminConfig
	Seed     bool
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// FundConfig holds the pool's lending parameters
type FundConfig struct {
	MonthlyContribution    float64
	ShortTermRate          float64
	ShortTermTermMonths    int
	LongTermRate           float64
	LongTermDurationMonths int
}

// SyncConfig holds the shared-state replication settings
type SyncConfig struct {
	Enabled     bool
	SnapshotKey string
	Interval    string
}

// AdminConfig holds the seeded administrator credentials
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	seed, _ := strconv.ParseBool(getEnv("SEED_REGISTRY", "true"))

	// Build config based on APP_MODE
	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(appMode),
		JWT:      loadJWTConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
		Fund:     loadFundConfig(),
		Sync:     loadSyncConfig(),
		Admin:    loadAdminConfig(),
		Seed:     seed,
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "siri_memberfund"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadFundConfig loads the lending parameters
func loadFundConfig() FundConfig {
	contribution, _ := strconv.ParseFloat(getEnv("MONTHLY_CONTRIBUTION", "2000"), 64)
	shortRate, _ := strconv.ParseFloat(getEnv("SHORT_TERM_RATE", "0.02"), 64)
	shortMonths, _ := strconv.Atoi(getEnv("SHORT_TERM_MONTHS", "2"))
	longRate, _ := strconv.ParseFloat(getEnv("LONG_TERM_RATE", "0.01"), 64)
	longMonths, _ := strconv.Atoi(getEnv("LONG_TERM_MONTHS", "20"))

	return FundConfig{
		MonthlyContribution:    contribution,
		ShortTermRate:          shortRate,
		ShortTermTermMonths:    shortMonths,
		LongTermRate:           longRate,
		LongTermDurationMonths: longMonths,
	}
}

// loadSyncConfig loads the replication settings
func loadSyncConfig() SyncConfig {
	enabled, _ := strconv.ParseBool(getEnv("SYNC_ENABLED", "true"))

	return SyncConfig{
		Enabled:     enabled,
		SnapshotKey: getEnv("SYNC_SNAPSHOT_KEY", "community_ledger_v1"),
		Interval:    getEnv("SYNC_INTERVAL", "@every 30s"),
	}
}

// loadAdminConfig loads the seeded administrator credentials
func loadAdminConfig() AdminConfig {
	return AdminConfig{
		Email:    getEnv("ADMIN_EMAIL", "admin@sirifund.local"),
		Password: getEnv("ADMIN_PASSWORD", "admin"),
		Name:     getEnv("ADMIN_NAME", "Fund Administrator"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://fund.sirifinance.app"
	}
	return origins
}
