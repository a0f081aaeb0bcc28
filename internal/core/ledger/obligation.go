package ledger

import "siri-memberfund/internal/core/domain"

// MemberObligation computes how much the member owes in the upcoming cycle:
// the fixed monthly contribution plus the installment of every approved
// loan that currently has one computable. A short-term loan disbursed this
// cycle contributes nothing yet.
//
// A member is assumed to hold at most one approved loan, but that is not
// enforced anywhere; summing across all matching loans degrades gracefully
// if the data ever violates it.
func MemberObligation(p Params, userID string, loans []domain.Loan) float64 {
	total := p.MonthlyContribution
	for _, loan := range loans {
		if loan.UserID != userID || loan.Status != domain.LoanApproved {
			continue
		}
		if emi := NextInstallment(p, loan); emi != nil {
			total += emi.TotalDue
		}
	}
	return total
}

// CommunityObligation computes the total still owed to the pool for the
// given cycle: the monthly contribution for every non-admin member without
// a PAID contribution entry for that cycle (installment-derived entries do
// not count), plus the installment of every approved loan not yet paid this
// cycle.
//
// This is a point-in-time estimate, not a reservation: it does not shrink
// as payments are recorded elsewhere in the same evaluation. Callers must
// recompute after each mutation.
func CommunityObligation(p Params, users []domain.User, loans []domain.Loan, contributions []domain.Contribution, cycle string) float64 {
	total := 0.0

	for _, u := range users {
		if u.Role == domain.RoleAdmin {
			continue
		}
		if !hasPaidContribution(contributions, u.ID, cycle) {
			total += p.MonthlyContribution
		}
	}

	for _, loan := range loans {
		if loan.Status != domain.LoanApproved || loan.LastPaymentMonth == cycle {
			continue
		}
		if emi := NextInstallment(p, loan); emi != nil {
			total += emi.TotalDue
		}
	}

	return total
}

func hasPaidContribution(contributions []domain.Contribution, userID, cycle string) bool {
	for _, c := range contributions {
		if c.UserID == userID && c.Month == cycle &&
			c.Status == domain.ContributionPaid && c.Kind == domain.KindContribution {
			return true
		}
	}
	return false
}
