package handlers

import (
	"errors"

	"siri-memberfund/internal/core/domain"
	"siri-memberfund/internal/core/services"
	"siri-memberfund/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ContributionHandler handles contribution ledger endpoints
type ContributionHandler struct {
	contribService *services.ContributionService
}

// NewContributionHandler creates a new contribution handler
func NewContributionHandler(contribService *services.ContributionService) *ContributionHandler {
	return &ContributionHandler{contribService: contribService}
}

// RecordContributionRequest represents a contribution payment request body
type RecordContributionRequest struct {
	UserID string `json:"user_id"`
	Month  string `json:"month"`
}

// Record appends a monthly contribution entry (admin only)
func (h *ContributionHandler) Record(c *fiber.Ctx) error {
	var req RecordContributionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.UserID == "" {
		return response.BadRequest(c, "User ID is required")
	}
	if req.Month == "" {
		return response.BadRequest(c, "Month is required")
	}

	entry, err := h.contribService.Record(c.Context(), &services.RecordInput{
		UserID: req.UserID,
		Month:  req.Month,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Month must be formatted as YYYY-MM")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrContributionExists):
			return response.Conflict(c, "Contribution already recorded for this cycle")
		default:
			return response.InternalServerError(c, "Failed to record contribution")
		}
	}

	return response.Created(c, "Contribution recorded successfully", fiber.Map{
		"contribution": entry,
	})
}

// List returns ledger entries, optionally filtered by month and kind
func (h *ContributionHandler) List(c *fiber.Ctx) error {
	entries, err := h.contribService.List(c.Context(), c.Query("month"), c.Query("kind"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Month must be YYYY-MM and kind must be CONTRIBUTION or INSTALLMENT")
		}
		return response.InternalServerError(c, "Failed to list contributions")
	}

	return response.Success(c, "Contributions retrieved successfully", fiber.Map{
		"contributions": entries,
	})
}

// ListMy returns the authenticated member's ledger entries
func (h *ContributionHandler) ListMy(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	entries, err := h.contribService.ListByUser(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list contributions")
	}

	return response.Success(c, "Contributions retrieved successfully", fiber.Map{
		"contributions": entries,
	})
}

// ListByUser returns one member's ledger entries
func (h *ContributionHandler) ListByUser(c *fiber.Ctx) error {
	entries, err := h.contribService.ListByUser(c.Context(), c.Params("id"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list contributions")
	}

	return response.Success(c, "Contributions retrieved successfully", fiber.Map{
		"contributions": entries,
	})
}
