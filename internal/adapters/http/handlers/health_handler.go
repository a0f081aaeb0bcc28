package handlers

import (
	"siri-memberfund/internal/config"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Root handles root endpoint
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "🚀 Siri MemberFund API v1.0 is running",
		"mode":    config.AppConfig.AppMode,
	})
}

// HealthCheck handles health check
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	dbStatus := "healthy"
	if err := config.HealthCheck(); err != nil {
		dbStatus = "unhealthy"
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"api":      "healthy",
			"database": dbStatus,
		},
	})
}

// APIInfo handles API v1 info
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Siri MemberFund API v1.0",
		"version": "1.0.0",
	})
}
