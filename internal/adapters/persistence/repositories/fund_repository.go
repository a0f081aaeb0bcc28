package repositories

import (
	"context"
	"errors"

	"siri-memberfund/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// fundMetaRepository implements FundMetaRepository interface
type fundMetaRepository struct {
	db *gorm.DB
}

// NewFundMetaRepository creates a new fund meta repository
func NewFundMetaRepository(db *gorm.DB) FundMetaRepository {
	return &fundMetaRepository{db: db}
}

// Get returns the single fund meta row, creating it on first use
func (r *fundMetaRepository) Get(ctx context.Context) (*models.FundMeta, error) {
	var meta models.FundMeta
	err := r.db.WithContext(ctx).Where("id = ?", 1).First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		meta = models.FundMeta{ID: 1}
		if err := r.db.WithContext(ctx).Create(&meta).Error; err != nil {
			return nil, err
		}
		return &meta, nil
	}
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// Update updates the fund meta row
func (r *fundMetaRepository) Update(ctx context.Context, meta *models.FundMeta) error {
	meta.ID = 1
	return r.db.WithContext(ctx).Save(meta).Error
}

// Touch advances the version stamp without changing the figures
func (r *fundMetaRepository) Touch(ctx context.Context, stamp int64) error {
	return r.db.WithContext(ctx).
		Model(&models.FundMeta{}).
		Where("id = ?", 1).
		Update("last_updated", stamp).Error
}

// snapshotRepository implements SnapshotRepository interface
type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Get returns the shared replication row, or nil when no snapshot
// has been published yet
func (r *snapshotRepository) Get(ctx context.Context, id string) (*models.FundSnapshot, error) {
	var snapshot models.FundSnapshot
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Upsert replaces the snapshot row wholesale
func (r *snapshotRepository) Upsert(ctx context.Context, snapshot *models.FundSnapshot) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(snapshot).Error
}
