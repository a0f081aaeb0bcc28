package services

import (
	"context"
	"log"
	"time"

	"siri-memberfund/internal/adapters/persistence/models"
	"siri-memberfund/internal/adapters/persistence/repositories"
	"siri-memberfund/internal/config"
	"siri-memberfund/internal/core/domain"
	"siri-memberfund/internal/core/ledger"
	"siri-memberfund/internal/pkg/cycle"
)

// FundService handles pool metrics and dashboard aggregation
type FundService struct {
	metaRepo repositories.FundMetaRepository
	cfg      *config.Config
	state    stateLoader
}

// NewFundService creates a new fund service
func NewFundService(
	userRepo repositories.UserRepository,
	contribRepo repositories.ContributionRepository,
	loanRepo repositories.LoanRepository,
	metaRepo repositories.FundMetaRepository,
	cfg *config.Config,
) *FundService {
	return &FundService{
		metaRepo: metaRepo,
		cfg:      cfg,
		state: stateLoader{
			userRepo:    userRepo,
			contribRepo: contribRepo,
			loanRepo:    loanRepo,
			metaRepo:    metaRepo,
		},
	}
}

// ============================================================
// Pool Metrics
// ============================================================

// Metrics recomputes the pool figures from the full ledger state
func (s *FundService) Metrics(ctx context.Context) (*ledger.PoolMetrics, error) {
	state, err := s.state.Load(ctx)
	if err != nil {
		return nil, err
	}

	metrics := ledger.ComputePoolMetrics(state)
	return &metrics, nil
}

// SetBankInterestInput represents the manually entered bank accrual
type SetBankInterestInput struct {
	Amount float64 `json:"amount" validate:"gte=0"`
}

// SetBankInterest records interest the pool's bank account has earned
func (s *FundService) SetBankInterest(ctx context.Context, input *SetBankInterestInput) (*models.FundMeta, error) {
	if input.Amount < 0 {
		return nil, domain.ErrInvalidInput
	}

	meta, err := s.metaRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	meta.BankInterest = input.Amount
	meta.LastUpdated = time.Now().UnixMilli()

	if err := s.metaRepo.Update(ctx, meta); err != nil {
		return nil, err
	}

	log.Printf("✅ Bank interest updated: %.2f", input.Amount)
	return meta, nil
}

// ============================================================
// Member Dashboard
// ============================================================

// MemberDashboardData represents one member's view of the fund
type MemberDashboardData struct {
	TotalContributed float64               `json:"total_contributed"`
	ActiveLoans      []domain.Loan         `json:"active_loans"`
	LoanHistory      []domain.Loan         `json:"loan_history"`
	MonthlyDue       float64               `json:"monthly_due"`
	CurrentCycle     string                `json:"current_cycle"`
	PoolMetrics      ledger.PoolMetrics    `json:"pool_metrics"`
	Contributions    []domain.Contribution `json:"contributions"`
}

// GetMemberDashboard returns one member's dashboard
func (s *FundService) GetMemberDashboard(ctx context.Context, userID string) (*MemberDashboardData, error) {
	state, err := s.state.Load(ctx)
	if err != nil {
		return nil, err
	}

	params := lendingParams(s.cfg)
	data := &MemberDashboardData{
		CurrentCycle: cycle.Current(time.Now()),
		PoolMetrics:  ledger.ComputePoolMetrics(state),
		MonthlyDue:   ledger.MemberObligation(params, userID, state.Loans),
	}

	for _, c := range state.Contributions {
		if c.UserID != userID {
			continue
		}
		data.Contributions = append(data.Contributions, c)
		if c.Status == domain.ContributionPaid && c.Kind == domain.KindContribution {
			data.TotalContributed += c.Amount
		}
	}

	for _, l := range state.Loans {
		if l.UserID != userID {
			continue
		}
		if l.Status == domain.LoanApproved {
			data.ActiveLoans = append(data.ActiveLoans, l)
		} else {
			data.LoanHistory = append(data.LoanHistory, l)
		}
	}

	return data, nil
}

// ============================================================
// Admin Dashboard
// ============================================================

// MemberSettlement reports one member's standing for a billing cycle
type MemberSettlement struct {
	UserID           string  `json:"user_id"`
	Name             string  `json:"name"`
	ContributionPaid bool    `json:"contribution_paid"`
	MonthlyDue       float64 `json:"monthly_due"`
}

// AdminDashboardData represents the administrator's view of the fund
type AdminDashboardData struct {
	TotalMembers        int                `json:"total_members"`
	PendingLoans        int                `json:"pending_loans"`
	ActiveLoans         int                `json:"active_loans"`
	CurrentCycle        string             `json:"current_cycle"`
	CommunityObligation float64            `json:"community_obligation"`
	PoolMetrics         ledger.PoolMetrics `json:"pool_metrics"`
	BankInterest        float64            `json:"bank_interest"`
	Settlements         []MemberSettlement `json:"settlements"`
}

// GetAdminDashboard returns the administrator's dashboard
func (s *FundService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	state, err := s.state.Load(ctx)
	if err != nil {
		return nil, err
	}

	current := cycle.Current(time.Now())
	params := lendingParams(s.cfg)

	data := &AdminDashboardData{
		CurrentCycle:        current,
		PoolMetrics:         ledger.ComputePoolMetrics(state),
		CommunityObligation: ledger.CommunityObligation(params, state.Users, state.Loans, state.Contributions, current),
		BankInterest:        state.BankInterest,
	}

	paid := make(map[string]bool)
	for _, c := range state.Contributions {
		if c.Month == current && c.Status == domain.ContributionPaid && c.Kind == domain.KindContribution {
			paid[c.UserID] = true
		}
	}

	for _, u := range state.Users {
		if u.Role != domain.RoleMember {
			continue
		}
		data.TotalMembers++
		data.Settlements = append(data.Settlements, MemberSettlement{
			UserID:           u.ID,
			Name:             u.Name,
			ContributionPaid: paid[u.ID],
			MonthlyDue:       ledger.MemberObligation(params, u.ID, state.Loans),
		})
	}

	for _, l := range state.Loans {
		switch l.Status {
		case domain.LoanPending:
			data.PendingLoans++
		case domain.LoanApproved:
			data.ActiveLoans++
		}
	}

	return data, nil
}
