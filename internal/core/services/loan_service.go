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
	"siri-memberfund/internal/core/ledger"
	"siri-memberfund/internal/pkg/cycle"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoanService handles loan lifecycle and installment business logic
type LoanService struct {
	loanRepo    repositories.LoanRepository
	contribRepo repositories.ContributionRepository
	userRepo    repositories.UserRepository
	metaRepo    repositories.FundMetaRepository
	cfg         *config.Config
	state       stateLoader
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repositories.LoanRepository,
	contribRepo repositories.ContributionRepository,
	userRepo repositories.UserRepository,
	metaRepo repositories.FundMetaRepository,
	cfg *config.Config,
) *LoanService {
	return &LoanService{
		loanRepo:    loanRepo,
		contribRepo: contribRepo,
		userRepo:    userRepo,
		metaRepo:    metaRepo,
		cfg:         cfg,
		state: stateLoader{
			userRepo:    userRepo,
			contribRepo: contribRepo,
			loanRepo:    loanRepo,
			metaRepo:    metaRepo,
		},
	}
}

// RequestInput represents a loan application
type RequestInput struct {
	UserID string  `json:"user_id" validate:"required"`
	Type   string  `json:"type" validate:"required,oneof=SHORT_TERM LONG_TERM"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// Request files a loan application in PENDING status
func (s *LoanService) Request(ctx context.Context, input *RequestInput) (*models.Loan, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.Type != string(domain.LoanShortTerm) && input.Type != string(domain.LoanLongTerm) {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	loan := &models.Loan{
		ID:                 uuid.New().String(),
		UserID:             input.UserID,
		Type:               input.Type,
		PrincipalAmount:    input.Amount,
		PrincipalRemaining: input.Amount,
		Status:             "PENDING",
		RequestDate:        time.Now(),
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	if err := s.metaRepo.Touch(ctx, time.Now().UnixMilli()); err != nil {
		return nil, err
	}

	log.Printf("✅ Loan requested: user=%s type=%s amount=%.2f", input.UserID, input.Type, input.Amount)
	return loan, nil
}

// Approve disburses a pending loan. Approval fails when the requested
// amount exceeds the pool's current liquidity.
func (s *LoanService) Approve(ctx context.Context, loanID string) (*models.Loan, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.Status != "PENDING" {
		return nil, domain.ErrInvalidLoanStatus
	}

	state, err := s.state.Load(ctx)
	if err != nil {
		return nil, err
	}

	metrics := ledger.ComputePoolMetrics(state)
	if loan.PrincipalAmount > metrics.Liquidity {
		return nil, domain.ErrInsufficientFunds
	}

	now := time.Now()
	loan.Status = "APPROVED"
	loan.ApprovalDate = &now
	loan.PrincipalRemaining = loan.PrincipalAmount
	loan.MonthsElapsed = 0

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	if err := s.metaRepo.Touch(ctx, time.Now().UnixMilli()); err != nil {
		return nil, err
	}

	log.Printf("✅ Loan approved: %s (%.2f disbursed)", loan.ID, loan.PrincipalAmount)
	return loan, nil
}

// Reject declines a pending loan
func (s *LoanService) Reject(ctx context.Context, loanID string) (*models.Loan, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.Status != "PENDING" {
		return nil, domain.ErrInvalidLoanStatus
	}

	loan.Status = "REJECTED"

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	if err := s.metaRepo.Touch(ctx, time.Now().UnixMilli()); err != nil {
		return nil, err
	}

	log.Printf("✅ Loan rejected: %s", loan.ID)
	return loan, nil
}

// PreviewInstallment returns the installment the loan would owe this
// cycle, or nil when nothing is due yet
func (s *LoanService) PreviewInstallment(ctx context.Context, loanID string) (*ledger.InstallmentBreakdown, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.Status != "APPROVED" {
		return nil, domain.ErrLoanNotPayable
	}

	return ledger.NextInstallment(lendingParams(s.cfg), loan.ToDomain()), nil
}

// RecordInstallment applies one installment payment to the loan for the
// given cycle and appends the matching ledger entry
func (s *LoanService) RecordInstallment(ctx context.Context, loanID, month string) (*models.Loan, *models.Contribution, error) {
	if !cycle.Valid(month) {
		return nil, nil, domain.ErrInvalidInput
	}

	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, nil, err
	}

	updated, entry, err := ledger.ApplyInstallment(lendingParams(s.cfg), loan.ToDomain(), month)
	if err != nil {
		return nil, nil, err
	}

	loan.ApplyDomain(updated)

	entry.ID = uuid.New().String()
	row := models.ContributionFromDomain(entry)

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, nil, err
	}
	if err := s.contribRepo.Create(ctx, row); err != nil {
		return nil, nil, err
	}

	if err := s.metaRepo.Touch(ctx, time.Now().UnixMilli()); err != nil {
		return nil, nil, err
	}

	log.Printf("✅ Installment recorded: loan=%s month=%s amount=%.2f", loan.ID, month, row.Amount)
	return loan, row, nil
}

// MemberObligation returns what a member owes for the current cycle
func (s *LoanService) MemberObligation(ctx context.Context, userID string) (float64, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrUserNotFound
		}
		return 0, err
	}

	rows, err := s.loanRepo.ListByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}

	loans := make([]domain.Loan, 0, len(rows))
	for _, r := range rows {
		loans = append(loans, r.ToDomain())
	}

	return ledger.MemberObligation(lendingParams(s.cfg), userID, loans), nil
}

// CommunityObligation returns the total outstanding dues across all
// members for the given cycle
func (s *LoanService) CommunityObligation(ctx context.Context, month string) (float64, error) {
	if !cycle.Valid(month) {
		return 0, domain.ErrInvalidInput
	}

	state, err := s.state.Load(ctx)
	if err != nil {
		return 0, err
	}

	return ledger.CommunityObligation(lendingParams(s.cfg), state.Users, state.Loans, state.Contributions, month), nil
}

// GetByID gets a loan by ID
func (s *LoanService) GetByID(ctx context.Context, id string) (*models.Loan, error) {
	return s.getLoan(ctx, id)
}

// ListAll lists every loan
func (s *LoanService) ListAll(ctx context.Context) ([]*models.Loan, error) {
	return s.loanRepo.ListAll(ctx)
}

// ListByUser lists all loans for a member
func (s *LoanService) ListByUser(ctx context.Context, userID string) ([]*models.Loan, error) {
	return s.loanRepo.ListByUserID(ctx, userID)
}

// ListPending lists loans awaiting an approval decision
func (s *LoanService) ListPending(ctx context.Context) ([]*models.Loan, error) {
	return s.loanRepo.ListByStatus(ctx, "PENDING")
}

func (s *LoanService) getLoan(ctx context.Context, id string) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}
