package services

import (
	"context"

	"siri-memberfund/internal/adapters/persistence/repositories"
	"siri-memberfund/internal/config"
	"siri-memberfund/internal/core/domain"
	"siri-memberfund/internal/core/ledger"
)

// stateLoader assembles the full ledger state from its backing tables.
// Pool figures are always recomputed from this state, never cached.
type stateLoader struct {
	userRepo    repositories.UserRepository
	contribRepo repositories.ContributionRepository
	loanRepo    repositories.LoanRepository
	metaRepo    repositories.FundMetaRepository
}

// Load reads every table into one in-memory ledger state
func (l *stateLoader) Load(ctx context.Context) (domain.LedgerState, error) {
	var state domain.LedgerState

	users, err := l.userRepo.List(ctx)
	if err != nil {
		return state, err
	}
	for _, u := range users {
		state.Users = append(state.Users, u.ToDomain())
	}

	entries, err := l.contribRepo.ListAll(ctx)
	if err != nil {
		return state, err
	}
	for _, e := range entries {
		state.Contributions = append(state.Contributions, e.ToDomain())
	}

	loans, err := l.loanRepo.ListAll(ctx)
	if err != nil {
		return state, err
	}
	for _, loan := range loans {
		state.Loans = append(state.Loans, loan.ToDomain())
	}

	meta, err := l.metaRepo.Get(ctx)
	if err != nil {
		return state, err
	}
	state.InitialInterestEarned = meta.InitialInterestEarned
	state.BankInterest = meta.BankInterest
	state.LastUpdated = meta.LastUpdated

	return state, nil
}

// lendingParams maps the configured fund settings onto engine parameters
func lendingParams(cfg *config.Config) ledger.Params {
	return ledger.Params{
		ShortTermRate:          cfg.Fund.ShortTermRate,
		ShortTermTermMonths:    cfg.Fund.ShortTermTermMonths,
		LongTermRate:           cfg.Fund.LongTermRate,
		LongTermDurationMonths: cfg.Fund.LongTermDurationMonths,
		MonthlyContribution:    cfg.Fund.MonthlyContribution,
	}
}
