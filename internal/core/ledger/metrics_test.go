package ledger

import (
	"fmt"
	"testing"

	"siri-memberfund/internal/core/domain"
)

func TestComputePoolMetrics(t *testing.T) {
	state := domain.LedgerState{
		Contributions: []domain.Contribution{
			{UserID: "m-1", Month: "2026-01", Amount: 2000, Status: domain.ContributionPaid, Kind: domain.KindContribution},
			{UserID: "m-2", Month: "2026-01", Amount: 2000, Status: domain.ContributionPaid, Kind: domain.KindContribution},
			// Installment cash is excluded from the pool contribution total.
			{UserID: "m-1", Month: "2026-01", Amount: 6000, Status: domain.ContributionPaid, Kind: domain.KindInstallment},
			// Pending entries never count.
			{UserID: "m-3", Month: "2026-01", Amount: 2000, Status: domain.ContributionPending, Kind: domain.KindContribution},
		},
		Loans: []domain.Loan{
			{Type: domain.LoanLongTerm, PrincipalAmount: 100000, PrincipalRemaining: 95000, Status: domain.LoanApproved, RepaidAmount: 5000, InterestCollected: 1000},
			{Type: domain.LoanShortTerm, PrincipalAmount: 10000, PrincipalRemaining: 0, Status: domain.LoanPaid, RepaidAmount: 10000, InterestCollected: 400},
			// Rejected requests never moved cash.
			{Type: domain.LoanLongTerm, PrincipalAmount: 30000, PrincipalRemaining: 30000, Status: domain.LoanRejected},
		},
		InitialInterestEarned: 20060,
		BankInterest:          1684,
	}

	m := ComputePoolMetrics(state)

	if !approxEqual(m.TotalContributed, 4000) {
		t.Errorf("TotalContributed = %v, want 4000", m.TotalContributed)
	}
	if !approxEqual(m.SystemInterest, 21460) {
		t.Errorf("SystemInterest = %v, want 21460", m.SystemInterest)
	}
	if !approxEqual(m.TotalInterest, 23144) {
		t.Errorf("TotalInterest = %v, want 23144", m.TotalInterest)
	}
	if !approxEqual(m.TotalRepaidPrincipal, 15000) {
		t.Errorf("TotalRepaidPrincipal = %v, want 15000", m.TotalRepaidPrincipal)
	}
	if !approxEqual(m.TotalDisbursed, 110000) {
		t.Errorf("TotalDisbursed = %v, want 110000", m.TotalDisbursed)
	}
	if !approxEqual(m.Liquidity, 4000+23144-110000+15000) {
		t.Errorf("Liquidity = %v, want %v", m.Liquidity, 4000+23144-110000+15000)
	}
}

func TestComputePoolMetricsIsPure(t *testing.T) {
	state := domain.LedgerState{
		Contributions: []domain.Contribution{
			{UserID: "m-1", Month: "2026-01", Amount: 2000, Status: domain.ContributionPaid, Kind: domain.KindContribution},
		},
		Loans: []domain.Loan{
			{Type: domain.LoanLongTerm, PrincipalAmount: 50000, PrincipalRemaining: 35000, Status: domain.LoanApproved, RepaidAmount: 15000, InterestCollected: 2500},
		},
		InitialInterestEarned: 100,
		BankInterest:          50,
	}

	first := ComputePoolMetrics(state)
	second := ComputePoolMetrics(state)
	if first != second {
		t.Errorf("repeated reads differ: %+v vs %+v", first, second)
	}
}

// The accounting identity must survive any sequence of approvals and
// installment applications starting from an empty ledger.
func TestAccountingIdentityAcrossMutations(t *testing.T) {
	p := DefaultParams()
	state := domain.LedgerState{
		Users: []domain.User{
			{ID: "admin-1", Role: domain.RoleAdmin},
			{ID: "m-1", Role: domain.RoleMember},
			{ID: "m-2", Role: domain.RoleMember},
		},
	}

	checkIdentity := func(t *testing.T, step string) {
		t.Helper()
		m := ComputePoolMetrics(state)
		want := m.TotalContributed + m.TotalInterest - m.TotalDisbursed + m.TotalRepaidPrincipal
		if !approxEqual(m.Liquidity, want) {
			t.Fatalf("%s: identity broken: liquidity %v, components give %v", step, m.Liquidity, want)
		}
	}

	// Two members contribute for three cycles.
	cycles := []string{"2026-01", "2026-02", "2026-03"}
	for _, cycle := range cycles {
		for _, member := range []string{"m-1", "m-2"} {
			state.Contributions = append(state.Contributions, domain.Contribution{
				ID:     fmt.Sprintf("c-%s-%s", member, cycle),
				UserID: member,
				Month:  cycle,
				Amount: p.MonthlyContribution,
				Status: domain.ContributionPaid,
				Kind:   domain.KindContribution,
			})
			checkIdentity(t, "contribution "+cycle)
		}
	}

	// Approve a long-term loan and a short-term loan.
	state.Loans = append(state.Loans,
		domain.Loan{ID: "l-1", UserID: "m-1", Type: domain.LoanLongTerm, PrincipalAmount: 8000, PrincipalRemaining: 8000, Status: domain.LoanApproved},
		domain.Loan{ID: "l-2", UserID: "m-2", Type: domain.LoanShortTerm, PrincipalAmount: 4000, PrincipalRemaining: 4000, Status: domain.LoanApproved, MonthsElapsed: 1},
	)
	checkIdentity(t, "approvals")

	// Walk the long-term loan to settlement and bullet-settle the other.
	for i := 0; i < p.LongTermDurationMonths; i++ {
		updated, entry, err := ApplyInstallment(p, state.Loans[0], "2026-04")
		if err != nil {
			t.Fatalf("installment %d: %v", i+1, err)
		}
		entry.ID = fmt.Sprintf("i-l1-%d", i+1)
		state.Loans[0] = updated
		state.Contributions = append(state.Contributions, entry)
		checkIdentity(t, fmt.Sprintf("long-term installment %d", i+1))
	}
	updated, entry, err := ApplyInstallment(p, state.Loans[1], "2026-04")
	if err != nil {
		t.Fatalf("bullet settlement: %v", err)
	}
	entry.ID = "i-l2-1"
	state.Loans[1] = updated
	state.Contributions = append(state.Contributions, entry)
	checkIdentity(t, "bullet settlement")

	// Everything repaid: disbursed principal fully returned.
	m := ComputePoolMetrics(state)
	if !approxEqual(m.TotalRepaidPrincipal, 12000) {
		t.Errorf("TotalRepaidPrincipal = %v, want 12000", m.TotalRepaidPrincipal)
	}
	if !approxEqual(m.TotalDisbursed, 12000) {
		t.Errorf("TotalDisbursed = %v, want 12000", m.TotalDisbursed)
	}
}
