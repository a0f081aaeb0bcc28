package handlers

import (
	"errors"
	"strings"
	"time"

	"siri-memberfund/internal/config"
	"siri-memberfund/internal/core/domain"
	"siri-memberfund/internal/core/services"
	"siri-memberfund/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	input := &services.LoginInput{
		Email:    strings.TrimSpace(strings.ToLower(req.Email)),
		Password: req.Password,
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid email or password")
		default:
			return response.InternalServerError(c, "Failed to login")
		}
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return response.Success(c, "Login successful", fiber.Map{
		"access_token": result.AccessToken,
		"user":         result.User,
	})
}

// RefreshToken handles token refresh
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		return response.Unauthorized(c, "Refresh token not found")
	}

	result, err := h.authService.RefreshToken(c.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTokenExpired):
			h.clearAuthCookies(c)
			return response.Unauthorized(c, "Refresh token expired, please login again")
		case errors.Is(err, services.ErrTokenRevoked):
			h.clearAuthCookies(c)
			return response.Unauthorized(c, "Refresh token revoked, please login again")
		case errors.Is(err, services.ErrInvalidToken):
			h.clearAuthCookies(c)
			return response.Unauthorized(c, "Invalid refresh token")
		default:
			return response.InternalServerError(c, "Failed to refresh token")
		}
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	return response.Success(c, "Token refreshed successfully", fiber.Map{
		"access_token": result.AccessToken,
		"user":         result.User,
	})
}

// Logout handles user logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken != "" {
		_ = h.authService.Logout(c.Context(), refreshToken)
	}

	h.clearAuthCookies(c)

	return response.Success(c, "Logged out successfully", nil)
}

// LogoutAll handles logout from all devices
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.authService.LogoutAll(c.Context(), userID); err != nil {
		return response.InternalServerError(c, "Failed to logout from all devices")
	}

	h.clearAuthCookies(c)

	return response.Success(c, "Logged out from all devices", nil)
}

// Me returns the current user info
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": user.ToResponse(),
	})
}

// setAuthCookies sets access and refresh token cookies
func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.AccessTokenMins * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.RefreshTokenDays * 24 * 60 * 60,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearAuthCookies clears auth cookies
func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})

	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
