package handlers

import (
	"errors"

	"siri-memberfund/internal/core/domain"
	"siri-memberfund/internal/core/services"
	"siri-memberfund/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles member registry endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateMemberRequest represents member enrollment request body
type CreateMemberRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	JoinedDate string `json:"joined_date"`
}

// Create enrolls a new member (admin only)
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}

	input := &services.CreateMemberInput{
		Name:       req.Name,
		Email:      req.Email,
		JoinedDate: req.JoinedDate,
	}

	user, err := h.userService.CreateMember(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid member data")
		default:
			return response.InternalServerError(c, "Failed to enroll member")
		}
	}

	return response.Created(c, "Member enrolled successfully", fiber.Map{
		"user": user,
	})
}

// List returns all registry users
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully", fiber.Map{
		"users": users,
		"total": len(users),
	})
}

// Get returns one user by ID
func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.userService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}

	return response.Success(c, "Member retrieved successfully", fiber.Map{
		"user": user,
	})
}

// Delete removes a member from the registry (admin only)
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	err := h.userService.Delete(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "The admin account cannot be removed")
		default:
			return response.InternalServerError(c, "Failed to remove member")
		}
	}

	return response.Success(c, "Member removed successfully", nil)
}
