package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"siri-memberfund/internal/adapters/persistence/models"
	"siri-memberfund/internal/adapters/persistence/repositories"
	"siri-memberfund/internal/core/domain"
	"siri-memberfund/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService handles member registry business logic
type UserService struct {
	userRepo repositories.UserRepository
	metaRepo repositories.FundMetaRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	metaRepo repositories.FundMetaRepository,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		metaRepo: metaRepo,
	}
}

// CreateMemberInput represents member enrollment input
type CreateMemberInput struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	JoinedDate string `json:"joined_date"`
}

// CreateMember enrolls a new member. The member's initial credential is
// the lowercased final word of their name.
func (s *UserService) CreateMember(ctx context.Context, input *CreateMemberInput) (*models.UserResponse, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if name == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	joined := time.Now()
	if input.JoinedDate != "" {
		joined, err = time.Parse("2006-01-02", input.JoinedDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	parts := strings.Fields(name)
	credential := strings.ToLower(parts[len(parts)-1])
	hashed, err := password.Hash(credential)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:         uuid.New().String(),
		Name:       name,
		Email:      email,
		Password:   hashed,
		Role:       "MEMBER",
		JoinedDate: joined,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.metaRepo.Touch(ctx, time.Now().UnixMilli()); err != nil {
		return nil, err
	}

	log.Printf("✅ Member enrolled: %s", user.Email)
	return user.ToResponse(), nil
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// List lists all registry users
func (s *UserService) List(ctx context.Context) ([]*models.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	return responses, nil
}

// Delete removes a member from the registry. The admin account cannot
// be removed.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if user.Role == "ADMIN" {
		return domain.ErrForbidden
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.metaRepo.Touch(ctx, time.Now().UnixMilli()); err != nil {
		return err
	}

	log.Printf("✅ Member removed: %s", user.Email)
	return nil
}
