package config

import (
	"log"
	"strings"
	"time"

	"siri-memberfund/internal/adapters/persistence/models"
	"siri-memberfund/internal/pkg/cycle"
	"siri-memberfund/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// seedMember describes a historical registry entry
type seedMember struct {
	Name  string
	Email string
}

// seedLoan describes a historical long-term loan with its current balance
type seedLoan struct {
	Email     string
	TakenDate string
	Principal float64
	Balance   float64
}

var registryMembers = []seedMember{
	{"Aravind Kumar", "aravinds369@gmail.com"},
	{"Santosh Gurral", "santoshgurral@gmail.com"},
	{"Santosh Reddy", "santoshreddy119@gmail.com"},
	{"Santosh Shetty", "archisantoshshetty007@gmail.com"},
	{"Santosh Hatti", "hattisantosh92@gmail.com"},
	{"Shankar Konnur", "shankar.konnur007@gmail.com"},
	{"Shashank Kulkarni", "shashank.physics@gmail.com"},
	{"Rajkumar Hatti", "hattirajkumar@gmail.com"},
	{"Praveenkumar Kavadimatti", "praveenkumar.kavadimatti@gmail.com"},
	{"Mallikarjun Manur", "manur.mallu@gmail.com"},
	{"Mallikarjun Junior", "extra.mallikarjun@gmail.com"},
	{"Vijaykumar Maga", "vijaymaga033@gmail.com"},
}

var historicalLoans = []seedLoan{
	{"aravinds369@gmail.com", "2025-08-10", 100000, 75000},
	{"santoshgurral@gmail.com", "2025-12-10", 100000, 95000},
	{"archisantoshshetty007@gmail.com", "2026-01-10", 50000, 50000},
	{"hattisantosh92@gmail.com", "2025-03-10", 30000, 16500},
	{"hattirajkumar@gmail.com", "2025-07-10", 50000, 35000},
	{"extra.mallikarjun@gmail.com", "2025-10-10", 100000, 10000},
	{"vijaymaga033@gmail.com", "2025-11-10", 30000, 27000},
}

const (
	seedContributionStart  = "2024-11"
	seedLastPaymentMonth   = "2026-01"
	seedInitialInterest    = 20060
	seedInitialBankAccrual = 1684
)

// Run executes all seeders. Each step is idempotent, so the seeder is
// safe to run on every boot.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	if err := s.seedRegistry(); err != nil {
		log.Printf("⚠️ Registry seeder skipped: %v", err)
	}

	if err := s.seedFundMeta(); err != nil {
		log.Printf("⚠️ Fund meta seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the configured admin account
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "ADMIN").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash(s.cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:         uuid.New().String(),
		Name:       s.cfg.Admin.Name,
		Email:      s.cfg.Admin.Email,
		Password:   hashedPassword,
		Role:       "ADMIN",
		JoinedDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

// seedRegistry seeds the historical member registry, their contribution
// history from the fund's first cycle through the current one, and the
// long-term loans carried over from the paper ledger.
func (s *Seeder) seedRegistry() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "MEMBER").Count(&count)
	if count > 0 {
		return nil // Registry already seeded
	}

	joined := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	months := contributionCycles(seedContributionStart, cycle.Current(time.Now()))

	idByEmail := make(map[string]string, len(registryMembers))

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range registryMembers {
			// Member credential is the lowercased final word of the name
			parts := strings.Fields(m.Name)
			surname := strings.ToLower(parts[len(parts)-1])
			hashed, err := password.Hash(surname)
			if err != nil {
				return err
			}

			user := &models.User{
				ID:         uuid.New().String(),
				Name:       m.Name,
				Email:      m.Email,
				Password:   hashed,
				Role:       "MEMBER",
				JoinedDate: joined,
			}
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			idByEmail[m.Email] = user.ID

			for _, month := range months {
				entry := &models.Contribution{
					ID:     uuid.New().String(),
					UserID: user.ID,
					Month:  month,
					Amount: s.cfg.Fund.MonthlyContribution,
					Status: "PAID",
					Kind:   "CONTRIBUTION",
				}
				if err := tx.Create(entry).Error; err != nil {
					return err
				}
			}
		}

		for _, ld := range historicalLoans {
			userID, ok := idByEmail[ld.Email]
			if !ok {
				continue
			}

			taken, err := time.Parse("2006-01-02", ld.TakenDate)
			if err != nil {
				return err
			}
			approval := taken

			loan := &models.Loan{
				ID:                 uuid.New().String(),
				UserID:             userID,
				Type:               "LONG_TERM",
				PrincipalAmount:    ld.Principal,
				PrincipalRemaining: ld.Balance,
				Status:             "APPROVED",
				RequestDate:        taken,
				ApprovalDate:       &approval,
				RepaidAmount:       ld.Principal - ld.Balance,
				InterestCollected:  0, // History carries principal only
				MonthsElapsed:      monthsBetween(taken, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)),
				LastPaymentMonth:   seedLastPaymentMonth,
			}
			if err := tx.Create(loan).Error; err != nil {
				return err
			}
		}

		log.Printf("✅ Registry seeded: %d members, %d loans", len(registryMembers), len(historicalLoans))
		return nil
	})
}

// seedFundMeta seeds the carried-over interest figures
func (s *Seeder) seedFundMeta() error {
	var count int64
	s.db.Model(&models.FundMeta{}).Count(&count)
	if count > 0 {
		return nil
	}

	meta := &models.FundMeta{
		ID:                    1,
		InitialInterestEarned: seedInitialInterest,
		BankInterest:          seedInitialBankAccrual,
		LastUpdated:           time.Now().UnixMilli(),
	}

	if err := s.db.Create(meta).Error; err != nil {
		return err
	}

	log.Println("✅ Fund meta seeded")
	return nil
}

// contributionCycles returns every cycle from first through last inclusive
func contributionCycles(first, last string) []string {
	var months []string
	for m := first; m <= last; m = cycle.Next(m) {
		months = append(months, m)
	}
	return months
}

// monthsBetween counts whole calendar months from a to b, never negative
func monthsBetween(a, b time.Time) int {
	diff := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if diff < 0 {
		return 0
	}
	return diff
}
