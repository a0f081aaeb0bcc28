package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"siri-memberfund/internal/adapters/persistence/models"
	"siri-memberfund/internal/adapters/persistence/repositories"
	"siri-memberfund/internal/config"
	"siri-memberfund/internal/core/domain"
	"siri-memberfund/internal/pkg/password"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// SyncService replicates the ledger through a shared snapshot row.
// Snapshots are adopted wholesale: whichever side carries the newer
// version stamp wins, there is no per-record merging.
type SyncService struct {
	db           *gorm.DB
	snapshotRepo repositories.SnapshotRepository
	metaRepo     repositories.FundMetaRepository
	cfg          *config.Config
	state        stateLoader
	scheduler    *cron.Cron
}

// NewSyncService creates a new sync service
func NewSyncService(
	db *gorm.DB,
	snapshotRepo repositories.SnapshotRepository,
	userRepo repositories.UserRepository,
	contribRepo repositories.ContributionRepository,
	loanRepo repositories.LoanRepository,
	metaRepo repositories.FundMetaRepository,
	cfg *config.Config,
) *SyncService {
	return &SyncService{
		db:           db,
		snapshotRepo: snapshotRepo,
		metaRepo:     metaRepo,
		cfg:          cfg,
		state: stateLoader{
			userRepo:    userRepo,
			contribRepo: contribRepo,
			loanRepo:    loanRepo,
			metaRepo:    metaRepo,
		},
	}
}

// SyncStatus reports where this node stands against the shared snapshot
type SyncStatus struct {
	Enabled       bool   `json:"enabled"`
	LocalVersion  int64  `json:"local_version"`
	RemoteVersion int64  `json:"remote_version"`
	SnapshotKey   string `json:"snapshot_key"`
}

// Start begins the background replication loop
func (s *SyncService) Start() error {
	if !s.cfg.Sync.Enabled {
		log.Println("ℹ️ Ledger sync disabled by configuration")
		return nil
	}

	s.scheduler = cron.New()
	_, err := s.scheduler.AddFunc(s.cfg.Sync.Interval, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()

		if err := s.Reconcile(ctx); err != nil {
			log.Printf("⚠️ Ledger sync failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.Start()
	log.Printf("✅ Ledger sync started [%s]", s.cfg.Sync.Interval)
	return nil
}

// Stop halts the background replication loop
func (s *SyncService) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// Status reports the local and remote version stamps
func (s *SyncService) Status(ctx context.Context) (*SyncStatus, error) {
	meta, err := s.metaRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	status := &SyncStatus{
		Enabled:      s.cfg.Sync.Enabled,
		LocalVersion: meta.LastUpdated,
		SnapshotKey:  s.cfg.Sync.SnapshotKey,
	}

	snapshot, err := s.snapshotRepo.Get(ctx, s.cfg.Sync.SnapshotKey)
	if err != nil {
		return nil, err
	}
	if snapshot != nil {
		status.RemoteVersion = snapshot.UpdatedAt
	}

	return status, nil
}

// Reconcile compares version stamps and moves state in whichever
// direction the newer stamp dictates
func (s *SyncService) Reconcile(ctx context.Context) error {
	meta, err := s.metaRepo.Get(ctx)
	if err != nil {
		return err
	}

	snapshot, err := s.snapshotRepo.Get(ctx, s.cfg.Sync.SnapshotKey)
	if err != nil {
		return err
	}

	switch {
	case snapshot == nil:
		return s.Push(ctx)
	case snapshot.UpdatedAt > meta.LastUpdated:
		return s.adopt(ctx, snapshot)
	case snapshot.UpdatedAt < meta.LastUpdated:
		return s.Push(ctx)
	default:
		return nil // In step
	}
}

// Push publishes the local ledger state as the shared snapshot
func (s *SyncService) Push(ctx context.Context) error {
	state, err := s.state.Load(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	snapshot := &models.FundSnapshot{
		ID:        s.cfg.Sync.SnapshotKey,
		Data:      string(data),
		UpdatedAt: state.LastUpdated,
	}

	if err := s.snapshotRepo.Upsert(ctx, snapshot); err != nil {
		return err
	}

	log.Printf("✅ Ledger snapshot published [version=%d]", state.LastUpdated)
	return nil
}

// Pull adopts the shared snapshot if it is newer than local state
func (s *SyncService) Pull(ctx context.Context) error {
	meta, err := s.metaRepo.Get(ctx)
	if err != nil {
		return err
	}

	snapshot, err := s.snapshotRepo.Get(ctx, s.cfg.Sync.SnapshotKey)
	if err != nil {
		return err
	}
	if snapshot == nil || snapshot.UpdatedAt <= meta.LastUpdated {
		return nil
	}

	return s.adopt(ctx, snapshot)
}

// adopt replaces the entire local ledger with the snapshot's contents.
// Credentials are not part of the snapshot: existing password hashes are
// kept by user ID, and new members get their name-derived credential.
func (s *SyncService) adopt(ctx context.Context, snapshot *models.FundSnapshot) error {
	var state domain.LedgerState
	if err := json.Unmarshal([]byte(snapshot.Data), &state); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.User
		if err := tx.Unscoped().Find(&existing).Error; err != nil {
			return err
		}
		hashByID := make(map[string]string, len(existing))
		for _, u := range existing {
			hashByID[u.ID] = u.Password
		}

		if err := tx.Unscoped().Where("1 = 1").Delete(&models.User{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Contribution{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Loan{}).Error; err != nil {
			return err
		}

		for _, u := range state.Users {
			hash, ok := hashByID[u.ID]
			if !ok {
				var err error
				hash, err = password.Hash(strings.ToLower(u.Surname()))
				if err != nil {
					return err
				}
			}

			row := &models.User{
				ID:         u.ID,
				Name:       u.Name,
				Email:      u.Email,
				Password:   hash,
				Role:       string(u.Role),
				JoinedDate: u.JoinedDate,
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}

		for _, c := range state.Contributions {
			if err := tx.Create(models.ContributionFromDomain(c)).Error; err != nil {
				return err
			}
		}

		for _, l := range state.Loans {
			if err := tx.Create(models.LoanFromDomain(l)).Error; err != nil {
				return err
			}
		}

		meta := &models.FundMeta{
			ID:                    1,
			InitialInterestEarned: state.InitialInterestEarned,
			BankInterest:          state.BankInterest,
			LastUpdated:           snapshot.UpdatedAt,
		}
		if err := tx.Save(meta).Error; err != nil {
			return err
		}

		log.Printf("✅ Ledger snapshot adopted [version=%d]", snapshot.UpdatedAt)
		return nil
	})
}
