package ledger

import (
	"math"

	"siri-memberfund/internal/core/domain"
)

// InstallmentBreakdown is the payment due right now against a loan, split
// into its principal and interest components.
type InstallmentBreakdown struct {
	TotalDue              float64 `json:"total_due"`
	PrincipalComponent    float64 `json:"principal_component"`
	InterestComponent     float64 `json:"interest_component"`
	RemainingBalanceAfter float64 `json:"remaining_balance_after"`
}

// NextInstallment computes the installment due against the loan in the
// current cycle, or nil when none is due.
//
// Short-term loans settle in a single bullet: nothing is due while
// MonthsElapsed is zero (the loan was disbursed this cycle); from one
// elapsed month onward the full principal plus the whole term's interest is
// due at once. The charge stays at exactly ShortTermTermMonths months of
// interest no matter how late the settlement is recorded.
//
// Long-term loans always have an installment while approved: a fixed slice
// of the original principal plus interest on the current outstanding
// balance. The slice never shrinks with the balance; the horizon is fixed.
func NextInstallment(p Params, loan domain.Loan) *InstallmentBreakdown {
	if loan.Type == domain.LoanShortTerm {
		if loan.MonthsElapsed < 1 {
			return nil
		}
		monthlyInterest := loan.PrincipalAmount * p.ShortTermRate
		interest := monthlyInterest * float64(p.ShortTermTermMonths)
		return &InstallmentBreakdown{
			TotalDue:              loan.PrincipalAmount + interest,
			PrincipalComponent:    loan.PrincipalAmount,
			InterestComponent:     interest,
			RemainingBalanceAfter: 0,
		}
	}

	principal := loan.PrincipalAmount / float64(p.LongTermDurationMonths)
	interest := loan.PrincipalRemaining * p.LongTermRate
	return &InstallmentBreakdown{
		TotalDue:              principal + interest,
		PrincipalComponent:    principal,
		InterestComponent:     interest,
		RemainingBalanceAfter: math.Max(0, loan.PrincipalRemaining-principal),
	}
}
