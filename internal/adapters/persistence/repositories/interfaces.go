package repositories

import (
	"context"

	"siri-memberfund/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) error
}

// ContributionRepository defines access to the append-only ledger of
// contribution and installment entries
type ContributionRepository interface {
	Create(ctx context.Context, entry *models.Contribution) error
	GetByID(ctx context.Context, id string) (*models.Contribution, error)
	ListAll(ctx context.Context) ([]*models.Contribution, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.Contribution, error)
	ListByMonth(ctx context.Context, month string) ([]*models.Contribution, error)
	ExistsPaidContribution(ctx context.Context, userID, month string) (bool, error)
}

// LoanRepository defines loan repository interface
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id string) (*models.Loan, error)
	Update(ctx context.Context, loan *models.Loan) error
	ListAll(ctx context.Context) ([]*models.Loan, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.Loan, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Loan, error)
}

// FundMetaRepository defines access to the single-row fund figures
type FundMetaRepository interface {
	Get(ctx context.Context) (*models.FundMeta, error)
	Update(ctx context.Context, meta *models.FundMeta) error
	Touch(ctx context.Context, stamp int64) error
}

// SnapshotRepository defines access to the shared replication row
type SnapshotRepository interface {
	Get(ctx context.Context, id string) (*models.FundSnapshot, error)
	Upsert(ctx context.Context, snapshot *models.FundSnapshot) error
}
