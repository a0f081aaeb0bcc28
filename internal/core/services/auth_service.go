package services

import (
	"context"
	"errors"
	"log"

	"siri-memberfund/internal/adapters/persistence/models"
	"siri-memberfund/internal/adapters/persistence/repositories"
	"siri-memberfund/internal/config"
	"siri-memberfund/internal/core/domain"
	"siri-memberfund/internal/pkg/jwt"
	"siri-memberfund/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		cfg:              cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// Login authenticates a user by email and credential
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify credential
	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Generate tokens
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	// 4. Store refresh token
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken refreshes the access token using refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	// 2. Hash the token to find in DB
	tokenHash := password.HashToken(refreshToken)

	// 3. Find token in DB
	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	// 4. Check if token is revoked
	if storedToken.IsRevoked() {
		return nil, ErrTokenRevoked
	}

	// 5. Check if token is expired
	if storedToken.IsExpired() {
		return nil, ErrTokenExpired
	}

	// 6. Get user
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	// 7. Revoke old refresh token (Token Rotation)
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	// 8. Generate new tokens
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}

	// 9. Store new refresh token
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for user: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)

	if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
		return err
	}

	log.Printf("✅ User logged out")
	return nil
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}

	log.Printf("✅ All sessions revoked for user ID: %s", userID)
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(user *models.User) (*TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Email,
		user.Name,
		user.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()

	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		tokenID,
		s.cfg.JWT.RefreshSecret,
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, userID string, refreshToken string) error {
	tokenHash := password.HashToken(refreshToken)
	expiresAt := jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays)

	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}

	return s.refreshTokenRepo.Create(ctx, token)
}
