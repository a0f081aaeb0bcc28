// Package ledger is the fund's reconciliation engine: pure, deterministic
// functions over snapshots of the domain entities. Nothing here performs
// I/O, reads the clock, or mutates its inputs, so every function is safe to
// call from any goroutine without locking.
package ledger

// Params holds the interest and duration constants the engine computes
// with. They are configuration, not data: loan products are fixed policies,
// not database rows.
type Params struct {
	// ShortTermRate is the flat monthly interest rate on the original
	// principal of a short-term loan.
	ShortTermRate float64
	// ShortTermTermMonths is the fixed term of a short-term loan; the
	// bullet settlement always charges exactly this many months of interest.
	ShortTermTermMonths int
	// LongTermRate is the monthly interest rate on the outstanding balance
	// of a long-term loan.
	LongTermRate float64
	// LongTermDurationMonths is the amortization horizon of a long-term
	// loan. The principal slice is always PrincipalAmount over this figure,
	// regardless of extra or late payments.
	LongTermDurationMonths int
	// MonthlyContribution is the fixed amount every member owes per cycle.
	MonthlyContribution float64
}

// DefaultParams returns the community's registry parameters.
func DefaultParams() Params {
	return Params{
		ShortTermRate:          0.02,
		ShortTermTermMonths:    2,
		LongTermRate:           0.01,
		LongTermDurationMonths: 20,
		MonthlyContribution:    2000,
	}
}
