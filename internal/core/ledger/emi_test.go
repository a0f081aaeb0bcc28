package ledger

import (
	"math"
	"testing"

	"siri-memberfund/internal/core/domain"
)

const tolerance = 0.01

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestNextInstallment(t *testing.T) {
	p := DefaultParams()

	tests := []struct {
		name string
		loan domain.Loan
		want *InstallmentBreakdown
	}{
		{
			name: "short-term just disbursed has nothing due",
			loan: domain.Loan{
				Type:               domain.LoanShortTerm,
				PrincipalAmount:    10000,
				PrincipalRemaining: 10000,
				Status:             domain.LoanApproved,
				MonthsElapsed:      0,
			},
			want: nil,
		},
		{
			name: "short-term after one month settles in one bullet",
			loan: domain.Loan{
				Type:               domain.LoanShortTerm,
				PrincipalAmount:    10000,
				PrincipalRemaining: 10000,
				Status:             domain.LoanApproved,
				MonthsElapsed:      1,
			},
			// 10,000 + 2 x (10,000 x 0.02) = 10,400
			want: &InstallmentBreakdown{
				TotalDue:              10400,
				PrincipalComponent:    10000,
				InterestComponent:     400,
				RemainingBalanceAfter: 0,
			},
		},
		{
			name: "short-term left unpaid for several cycles still charges two months of interest",
			loan: domain.Loan{
				Type:               domain.LoanShortTerm,
				PrincipalAmount:    50000,
				PrincipalRemaining: 50000,
				Status:             domain.LoanApproved,
				MonthsElapsed:      5,
			},
			want: &InstallmentBreakdown{
				TotalDue:              52000,
				PrincipalComponent:    50000,
				InterestComponent:     2000,
				RemainingBalanceAfter: 0,
			},
		},
		{
			name: "long-term first installment",
			loan: domain.Loan{
				Type:               domain.LoanLongTerm,
				PrincipalAmount:    100000,
				PrincipalRemaining: 100000,
				Status:             domain.LoanApproved,
				MonthsElapsed:      0,
			},
			// principal 100,000/20 = 5,000; interest 100,000 x 0.01 = 1,000
			want: &InstallmentBreakdown{
				TotalDue:              6000,
				PrincipalComponent:    5000,
				InterestComponent:     1000,
				RemainingBalanceAfter: 95000,
			},
		},
		{
			name: "long-term interest shrinks with the balance but the principal slice does not",
			loan: domain.Loan{
				Type:               domain.LoanLongTerm,
				PrincipalAmount:    100000,
				PrincipalRemaining: 25000,
				Status:             domain.LoanApproved,
				MonthsElapsed:      15,
			},
			want: &InstallmentBreakdown{
				TotalDue:              5250,
				PrincipalComponent:    5000,
				InterestComponent:     250,
				RemainingBalanceAfter: 20000,
			},
		},
		{
			name: "long-term remaining balance clamps at zero",
			loan: domain.Loan{
				Type:               domain.LoanLongTerm,
				PrincipalAmount:    100000,
				PrincipalRemaining: 3000,
				Status:             domain.LoanApproved,
				MonthsElapsed:      19,
			},
			want: &InstallmentBreakdown{
				TotalDue:              5030,
				PrincipalComponent:    5000,
				InterestComponent:     30,
				RemainingBalanceAfter: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextInstallment(p, tt.loan)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("NextInstallment() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("NextInstallment() = nil, want %+v", tt.want)
			}
			if !approxEqual(got.TotalDue, tt.want.TotalDue) {
				t.Errorf("TotalDue = %v, want %v", got.TotalDue, tt.want.TotalDue)
			}
			if !approxEqual(got.PrincipalComponent, tt.want.PrincipalComponent) {
				t.Errorf("PrincipalComponent = %v, want %v", got.PrincipalComponent, tt.want.PrincipalComponent)
			}
			if !approxEqual(got.InterestComponent, tt.want.InterestComponent) {
				t.Errorf("InterestComponent = %v, want %v", got.InterestComponent, tt.want.InterestComponent)
			}
			if !approxEqual(got.RemainingBalanceAfter, tt.want.RemainingBalanceAfter) {
				t.Errorf("RemainingBalanceAfter = %v, want %v", got.RemainingBalanceAfter, tt.want.RemainingBalanceAfter)
			}
		})
	}
}

func TestNextInstallmentNeverNegativeBalance(t *testing.T) {
	p := DefaultParams()

	// Whatever the remaining balance, the post-installment balance must not
	// go below zero.
	for _, remaining := range []float64{0, 1, 4999, 5000, 5001, 100000} {
		loan := domain.Loan{
			Type:               domain.LoanLongTerm,
			PrincipalAmount:    100000,
			PrincipalRemaining: remaining,
			Status:             domain.LoanApproved,
		}
		emi := NextInstallment(p, loan)
		if emi == nil {
			t.Fatalf("remaining %v: expected an installment", remaining)
		}
		if emi.RemainingBalanceAfter < 0 {
			t.Errorf("remaining %v: RemainingBalanceAfter = %v, want >= 0", remaining, emi.RemainingBalanceAfter)
		}
	}
}
