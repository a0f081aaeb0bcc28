package handlers

import (
	"errors"

	"siri-memberfund/internal/core/domain"
	"siri-memberfund/internal/core/services"
	"siri-memberfund/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan lifecycle endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// RequestLoanRequest represents a loan application request body
type RequestLoanRequest struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// RecordInstallmentRequest represents an installment payment request body
type RecordInstallmentRequest struct {
	Month string `json:"month"`
}

// Request files a loan application for the authenticated member
func (h *LoanHandler) Request(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req RequestLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.Request(c.Context(), &services.RequestInput{
		UserID: userID,
		Type:   req.Type,
		Amount: req.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Loan type must be SHORT_TERM or LONG_TERM and amount must be positive")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "Member not found")
		default:
			return response.InternalServerError(c, "Failed to request loan")
		}
	}

	return response.Created(c, "Loan requested successfully", fiber.Map{
		"loan": loan,
	})
}

// Approve disburses a pending loan (admin only)
func (h *LoanHandler) Approve(c *fiber.Ctx) error {
	loan, err := h.loanService.Approve(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrInvalidLoanStatus):
			return response.Conflict(c, "Only pending loans can be approved")
		case errors.Is(err, domain.ErrInsufficientFunds):
			return response.UnprocessableEntity(c, "Requested amount exceeds pool liquidity")
		default:
			return response.InternalServerError(c, "Failed to approve loan")
		}
	}

	return response.Success(c, "Loan approved successfully", fiber.Map{
		"loan": loan,
	})
}

// Reject declines a pending loan (admin only)
func (h *LoanHandler) Reject(c *fiber.Ctx) error {
	loan, err := h.loanService.Reject(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrInvalidLoanStatus):
			return response.Conflict(c, "Only pending loans can be rejected")
		default:
			return response.InternalServerError(c, "Failed to reject loan")
		}
	}

	return response.Success(c, "Loan rejected successfully", fiber.Map{
		"loan": loan,
	})
}

// PreviewInstallment returns the installment currently due on a loan
func (h *LoanHandler) PreviewInstallment(c *fiber.Ctx) error {
	emi, err := h.loanService.PreviewInstallment(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrLoanNotPayable):
			return response.Conflict(c, "Loan is not in a payable state")
		default:
			return response.InternalServerError(c, "Failed to compute installment")
		}
	}

	return response.Success(c, "Installment computed successfully", fiber.Map{
		"installment": emi, // nil when nothing is due yet
	})
}

// RecordInstallment applies an installment payment (admin only)
func (h *LoanHandler) RecordInstallment(c *fiber.Ctx) error {
	var req RecordInstallmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Month == "" {
		return response.BadRequest(c, "Month is required")
	}

	loan, entry, err := h.loanService.RecordInstallment(c.Context(), c.Params("id"), req.Month)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Month must be formatted as YYYY-MM")
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrLoanNotPayable):
			return response.Conflict(c, "Loan is not in a payable state")
		case errors.Is(err, domain.ErrNoInstallmentDue):
			return response.UnprocessableEntity(c, "No installment is due on this loan yet")
		default:
			return response.InternalServerError(c, "Failed to record installment")
		}
	}

	return response.Success(c, "Installment recorded successfully", fiber.Map{
		"loan":  loan,
		"entry": entry,
	})
}

// List returns loans. Admins see everything; members see their own.
func (h *LoanHandler) List(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	userID, _ := c.Locals("userID").(string)

	var (
		loans interface{}
		err   error
	)
	if role == "ADMIN" {
		if c.Query("status") == "PENDING" {
			loans, err = h.loanService.ListPending(c.Context())
		} else {
			loans, err = h.loanService.ListAll(c.Context())
		}
	} else {
		loans, err = h.loanService.ListByUser(c.Context(), userID)
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"loans": loans,
	})
}

// ListMy returns the authenticated member's loans
func (h *LoanHandler) ListMy(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	loans, err := h.loanService.ListByUser(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"loans": loans,
	})
}

// Get returns one loan by ID
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	loan, err := h.loanService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to get loan")
	}

	// Members can only read their own loans
	role, _ := c.Locals("role").(string)
	userID, _ := c.Locals("userID").(string)
	if role != "ADMIN" && loan.UserID != userID {
		return response.Forbidden(c, "You don't have permission to access this resource")
	}

	return response.Success(c, "Loan retrieved successfully", fiber.Map{
		"loan": loan,
	})
}

// Obligation returns what the authenticated member owes this cycle
func (h *LoanHandler) Obligation(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	due, err := h.loanService.MemberObligation(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to compute obligation")
	}

	return response.Success(c, "Obligation computed successfully", fiber.Map{
		"monthly_due": due,
	})
}

// CommunityObligation returns the total dues across all members for a
// cycle (admin only)
func (h *LoanHandler) CommunityObligation(c *fiber.Ctx) error {
	month := c.Query("month")
	if month == "" {
		return response.BadRequest(c, "Month query parameter is required")
	}

	due, err := h.loanService.CommunityObligation(c.Context(), month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Month must be formatted as YYYY-MM")
		}
		return response.InternalServerError(c, "Failed to compute obligation")
	}

	return response.Success(c, "Obligation computed successfully", fiber.Map{
		"month":     month,
		"total_due": due,
	})
}
