package services

import (
	"context"
	"errors"
	"log"
	"time"

	"siri-memberfund/internal/adapters/persistence/models"
	"siri-memberfund/internal/adapters/persistence/repositories"
	"siri-memberfund/internal/config"
	"siri-memberfund/internal/core/domain"
	"siri-memberfund/internal/pkg/cycle"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContributionService handles the monthly contribution ledger
type ContributionService struct {
	contribRepo repositories.ContributionRepository
	userRepo    repositories.UserRepository
	metaRepo    repositories.FundMetaRepository
	cfg         *config.Config
}

// NewContributionService creates a new contribution service
func NewContributionService(
	contribRepo repositories.ContributionRepository,
	userRepo repositories.UserRepository,
	metaRepo repositories.FundMetaRepository,
	cfg *config.Config,
) *ContributionService {
	return &ContributionService{
		contribRepo: contribRepo,
		userRepo:    userRepo,
		metaRepo:    metaRepo,
		cfg:         cfg,
	}
}

// RecordInput represents a monthly contribution payment
type RecordInput struct {
	UserID string `json:"user_id" validate:"required"`
	Month  string `json:"month" validate:"required"`
}

// Record appends a PAID contribution entry for the member and cycle.
// One contribution per member per cycle; repeats are rejected.
func (s *ContributionService) Record(ctx context.Context, input *RecordInput) (*models.Contribution, error) {
	if !cycle.Valid(input.Month) {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	exists, err := s.contribRepo.ExistsPaidContribution(ctx, input.UserID, input.Month)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrContributionExists
	}

	entry := &models.Contribution{
		ID:     uuid.New().String(),
		UserID: input.UserID,
		Month:  input.Month,
		Amount: s.cfg.Fund.MonthlyContribution,
		Status: "PAID",
		Kind:   "CONTRIBUTION",
	}

	if err := s.contribRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.metaRepo.Touch(ctx, time.Now().UnixMilli()); err != nil {
		return nil, err
	}

	log.Printf("✅ Contribution recorded: user=%s month=%s", input.UserID, input.Month)
	return entry, nil
}

// ListAll lists every ledger entry
func (s *ContributionService) ListAll(ctx context.Context) ([]*models.Contribution, error) {
	return s.contribRepo.ListAll(ctx)
}

// List lists ledger entries, optionally filtered by cycle and kind
func (s *ContributionService) List(ctx context.Context, month, kind string) ([]*models.Contribution, error) {
	if kind != "" && kind != "CONTRIBUTION" && kind != "INSTALLMENT" {
		return nil, domain.ErrInvalidInput
	}

	var (
		entries []*models.Contribution
		err     error
	)
	if month != "" {
		entries, err = s.ListByMonth(ctx, month)
	} else {
		entries, err = s.contribRepo.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	if kind == "" {
		return entries, nil
	}
	filtered := make([]*models.Contribution, 0, len(entries))
	for _, e := range entries {
		if e.Kind == kind {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// ListByUser lists all ledger entries for a member
func (s *ContributionService) ListByUser(ctx context.Context, userID string) ([]*models.Contribution, error) {
	return s.contribRepo.ListByUserID(ctx, userID)
}

// ListByMonth lists all ledger entries for a billing cycle
func (s *ContributionService) ListByMonth(ctx context.Context, month string) ([]*models.Contribution, error) {
	if !cycle.Valid(month) {
		return nil, domain.ErrInvalidInput
	}
	return s.contribRepo.ListByMonth(ctx, month)
}
