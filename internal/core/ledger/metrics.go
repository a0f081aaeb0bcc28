package ledger

import "siri-memberfund/internal/core/domain"

// PoolMetrics is the fund's derived financial position. Every figure is
// recomputed from the full snapshot on each call; nothing is cached or
// maintained incrementally.
type PoolMetrics struct {
	// TotalContributed sums all PAID pool contributions, excluding
	// installment-derived entries.
	TotalContributed float64 `json:"total_contributed"`
	// SystemInterest is interest collected through loan installments plus
	// the registry's one-time historical seed figure.
	SystemInterest float64 `json:"system_interest"`
	// TotalInterest adds the manually entered bank interest on idle
	// deposits. That figure is admin-supplied, never computed.
	TotalInterest        float64 `json:"total_interest"`
	TotalRepaidPrincipal float64 `json:"total_repaid_principal"`
	// TotalDisbursed sums the principal of loans that actually left the
	// pool: approved or fully repaid. Pending and rejected requests never
	// moved cash.
	TotalDisbursed float64 `json:"total_disbursed"`
	// Liquidity is the spendable balance: cash in (contributions +
	// interest) minus cash out (disbursed principal) plus cash back in
	// (repaid principal). The identity holds for every valid state.
	Liquidity float64 `json:"liquidity"`
	// TotalPoolValue is the managed pool figure shown to members:
	// contributions plus all interest.
	TotalPoolValue float64 `json:"total_pool_value"`
}

// ComputePoolMetrics derives the fund position from a snapshot.
func ComputePoolMetrics(state domain.LedgerState) PoolMetrics {
	var m PoolMetrics

	for _, c := range state.Contributions {
		if c.Status == domain.ContributionPaid && c.Kind == domain.KindContribution {
			m.TotalContributed += c.Amount
		}
	}

	m.SystemInterest = state.InitialInterestEarned
	for _, l := range state.Loans {
		m.SystemInterest += l.InterestCollected
		m.TotalRepaidPrincipal += l.RepaidAmount
		if l.Status == domain.LoanApproved || l.Status == domain.LoanPaid {
			m.TotalDisbursed += l.PrincipalAmount
		}
	}

	m.TotalInterest = m.SystemInterest + state.BankInterest
	m.Liquidity = m.TotalContributed + m.TotalInterest - m.TotalDisbursed + m.TotalRepaidPrincipal
	m.TotalPoolValue = m.TotalContributed + m.TotalInterest
	return m
}
