package ledger

import (
	"math"

	"siri-memberfund/internal/core/domain"
)

// ApplyInstallment advances an approved loan by one recorded payment and
// produces the matching ledger entry for the cycle.
//
// The input loan is not mutated; the returned loan is a complete
// replacement. The returned contribution carries no ID: the engine is
// deterministic, so identifier assignment belongs to the caller.
//
// The recorded cash amount is rounded to the nearest whole currency unit
// while the loan's internal accumulators carry the unrounded components.
// The resulting drift between recorded cash and ledger state is small,
// bounded, and intentionally kept for compatibility with the historical
// registry.
func ApplyInstallment(p Params, loan domain.Loan, cycle string) (domain.Loan, domain.Contribution, error) {
	if loan.Status != domain.LoanApproved {
		return loan, domain.Contribution{}, domain.ErrLoanNotPayable
	}

	emi := NextInstallment(p, loan)
	if emi == nil {
		return loan, domain.Contribution{}, domain.ErrNoInstallmentDue
	}

	updated := loan
	updated.PrincipalRemaining = emi.RemainingBalanceAfter
	updated.RepaidAmount += emi.PrincipalComponent
	updated.InterestCollected += emi.InterestComponent
	updated.MonthsElapsed++
	updated.LastPaymentMonth = cycle
	if emi.RemainingBalanceAfter <= 0 {
		updated.Status = domain.LoanPaid
	}

	entry := domain.Contribution{
		UserID: loan.UserID,
		Month:  cycle,
		Amount: math.Round(emi.TotalDue),
		Status: domain.ContributionPaid,
		Kind:   domain.KindInstallment,
	}

	return updated, entry, nil
}
