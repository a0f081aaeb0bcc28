package handlers

import (
	"errors"

	"siri-memberfund/internal/core/domain"
	"siri-memberfund/internal/core/services"
	"siri-memberfund/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FundHandler handles pool metrics and dashboard endpoints
type FundHandler struct {
	fundService *services.FundService
}

// NewFundHandler creates a new fund handler
func NewFundHandler(fundService *services.FundService) *FundHandler {
	return &FundHandler{fundService: fundService}
}

// SetBankInterestRequest represents the bank interest update body
type SetBankInterestRequest struct {
	Amount float64 `json:"amount"`
}

// Metrics returns the pool's current figures
func (h *FundHandler) Metrics(c *fiber.Ctx) error {
	metrics, err := h.fundService.Metrics(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute pool metrics")
	}

	return response.Success(c, "Pool metrics computed successfully", fiber.Map{
		"metrics": metrics,
	})
}

// SetBankInterest records the pool bank account's accrued interest
// (admin only)
func (h *FundHandler) SetBankInterest(c *fiber.Ctx) error {
	var req SetBankInterestRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	meta, err := h.fundService.SetBankInterest(c.Context(), &services.SetBankInterestInput{
		Amount: req.Amount,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Amount must not be negative")
		}
		return response.InternalServerError(c, "Failed to update bank interest")
	}

	return response.Success(c, "Bank interest updated successfully", fiber.Map{
		"bank_interest": meta.BankInterest,
	})
}

// Dashboard routes to the dashboard matching the caller's role
func (h *FundHandler) Dashboard(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	if role == "ADMIN" {
		return h.AdminDashboard(c)
	}
	return h.MemberDashboard(c)
}

// MemberDashboard returns the authenticated member's dashboard
func (h *FundHandler) MemberDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.fundService.GetMemberDashboard(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

// AdminDashboard returns the administrator's dashboard (admin only)
func (h *FundHandler) AdminDashboard(c *fiber.Ctx) error {
	data, err := h.fundService.GetAdminDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to build dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}
