package repositories

import (
	"context"

	"siri-memberfund/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// contributionRepository implements ContributionRepository interface
type contributionRepository struct {
	db *gorm.DB
}

// NewContributionRepository creates a new contribution repository
func NewContributionRepository(db *gorm.DB) ContributionRepository {
	return &contributionRepository{db: db}
}

// Create appends a ledger entry
func (r *contributionRepository) Create(ctx context.Context, entry *models.Contribution) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetByID gets a ledger entry by ID
func (r *contributionRepository) GetByID(ctx context.Context, id string) (*models.Contribution, error) {
	var entry models.Contribution
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListAll lists every ledger entry ordered by cycle
func (r *contributionRepository) ListAll(ctx context.Context) ([]*models.Contribution, error) {
	var entries []*models.Contribution
	err := r.db.WithContext(ctx).Order("month ASC, created_at ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByUserID lists all ledger entries for a user
func (r *contributionRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Contribution, error) {
	var entries []*models.Contribution
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("month ASC, created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByMonth lists all ledger entries for a billing cycle
func (r *contributionRepository) ListByMonth(ctx context.Context, month string) ([]*models.Contribution, error) {
	var entries []*models.Contribution
	err := r.db.WithContext(ctx).
		Where("month = ?", month).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ExistsPaidContribution checks whether the user already has a PAID
// contribution entry for the cycle. Installment entries do not count.
func (r *contributionRepository) ExistsPaidContribution(ctx context.Context, userID, month string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Contribution{}).
		Where("user_id = ?", userID).
		Where("month = ?", month).
		Where("status = ?", "PAID").
		Where("kind = ?", "CONTRIBUTION").
		Count(&count).Error
	return count > 0, err
}
