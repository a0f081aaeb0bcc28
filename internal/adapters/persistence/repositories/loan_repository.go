package repositories

import (
	"context"

	"siri-memberfund/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create creates a new loan
func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID gets a loan by ID
func (r *loanRepository) GetByID(ctx context.Context, id string) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// Update updates a loan
func (r *loanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

// ListAll lists every loan ordered by request date
func (r *loanRepository) ListAll(ctx context.Context) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).Order("request_date ASC, created_at ASC").Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

// ListByUserID lists all loans for a user
func (r *loanRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("request_date ASC, created_at ASC").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

// ListByStatus lists all loans with the given status
func (r *loanRepository) ListByStatus(ctx context.Context, status string) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("request_date ASC, created_at ASC").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}
