package ledger

import (
	"errors"
	"testing"

	"siri-memberfund/internal/core/domain"
)

func TestApplyInstallmentLongTermAmortizes(t *testing.T) {
	p := DefaultParams()

	loan := domain.Loan{
		ID:                 "l-1",
		UserID:             "m-1",
		Type:               domain.LoanLongTerm,
		PrincipalAmount:    100000,
		PrincipalRemaining: 100000,
		Status:             domain.LoanApproved,
	}

	// Twenty applications retire the loan completely, each one shaving off
	// exactly one twentieth of the original principal.
	for month := 1; month <= p.LongTermDurationMonths; month++ {
		updated, entry, err := ApplyInstallment(p, loan, "2026-01")
		if err != nil {
			t.Fatalf("month %d: ApplyInstallment() error = %v", month, err)
		}

		wantRemaining := 100000 - float64(month)*5000
		if !approxEqual(updated.PrincipalRemaining, wantRemaining) {
			t.Fatalf("month %d: PrincipalRemaining = %v, want %v", month, updated.PrincipalRemaining, wantRemaining)
		}
		if updated.MonthsElapsed != month {
			t.Fatalf("month %d: MonthsElapsed = %d", month, updated.MonthsElapsed)
		}
		if updated.LastPaymentMonth != "2026-01" {
			t.Fatalf("month %d: LastPaymentMonth = %q", month, updated.LastPaymentMonth)
		}
		if !approxEqual(updated.RepaidAmount+updated.PrincipalRemaining, updated.PrincipalAmount) {
			t.Fatalf("month %d: repaid %v + remaining %v != principal %v",
				month, updated.RepaidAmount, updated.PrincipalRemaining, updated.PrincipalAmount)
		}
		if entry.Kind != domain.KindInstallment {
			t.Fatalf("month %d: entry kind = %q, want INSTALLMENT", month, entry.Kind)
		}
		if entry.Status != domain.ContributionPaid {
			t.Fatalf("month %d: entry status = %q, want PAID", month, entry.Status)
		}

		loan = updated
	}

	if loan.Status != domain.LoanPaid {
		t.Errorf("final status = %q, want PAID", loan.Status)
	}
	if !approxEqual(loan.PrincipalRemaining, 0) {
		t.Errorf("final PrincipalRemaining = %v, want 0", loan.PrincipalRemaining)
	}
	if !approxEqual(loan.RepaidAmount, 100000) {
		t.Errorf("final RepaidAmount = %v, want 100000", loan.RepaidAmount)
	}

	// Collected interest is 1% of each declining balance:
	// 1000 + 950 + ... + 50 = 10,500.
	if !approxEqual(loan.InterestCollected, 10500) {
		t.Errorf("final InterestCollected = %v, want 10500", loan.InterestCollected)
	}

	// Once settled, further applications must be rejected.
	if _, _, err := ApplyInstallment(p, loan, "2026-02"); !errors.Is(err, domain.ErrLoanNotPayable) {
		t.Errorf("apply on PAID loan: error = %v, want ErrLoanNotPayable", err)
	}
}

func TestApplyInstallmentShortTermBullet(t *testing.T) {
	p := DefaultParams()

	loan := domain.Loan{
		ID:                 "l-2",
		UserID:             "m-2",
		Type:               domain.LoanShortTerm,
		PrincipalAmount:    10000,
		PrincipalRemaining: 10000,
		Status:             domain.LoanApproved,
		MonthsElapsed:      0,
	}

	// Nothing due in the disbursement cycle.
	if _, _, err := ApplyInstallment(p, loan, "2026-01"); !errors.Is(err, domain.ErrNoInstallmentDue) {
		t.Fatalf("fresh short-term loan: error = %v, want ErrNoInstallmentDue", err)
	}

	loan.MonthsElapsed = 1
	updated, entry, err := ApplyInstallment(p, loan, "2026-02")
	if err != nil {
		t.Fatalf("ApplyInstallment() error = %v", err)
	}

	if updated.Status != domain.LoanPaid {
		t.Errorf("status = %q, want PAID", updated.Status)
	}
	if !approxEqual(updated.PrincipalRemaining, 0) {
		t.Errorf("PrincipalRemaining = %v, want 0", updated.PrincipalRemaining)
	}
	if !approxEqual(updated.RepaidAmount, 10000) {
		t.Errorf("RepaidAmount = %v, want 10000", updated.RepaidAmount)
	}
	if !approxEqual(updated.InterestCollected, 400) {
		t.Errorf("InterestCollected = %v, want 400", updated.InterestCollected)
	}
	if entry.Amount != 10400 {
		t.Errorf("entry amount = %v, want 10400", entry.Amount)
	}
	if entry.Month != "2026-02" {
		t.Errorf("entry month = %q, want 2026-02", entry.Month)
	}
}

func TestApplyInstallmentRejectsUnapprovedLoans(t *testing.T) {
	p := DefaultParams()

	for _, status := range []domain.LoanStatus{domain.LoanPending, domain.LoanRejected, domain.LoanPaid} {
		loan := domain.Loan{
			Type:               domain.LoanLongTerm,
			PrincipalAmount:    50000,
			PrincipalRemaining: 50000,
			Status:             status,
		}
		if _, _, err := ApplyInstallment(p, loan, "2026-01"); !errors.Is(err, domain.ErrLoanNotPayable) {
			t.Errorf("status %s: error = %v, want ErrLoanNotPayable", status, err)
		}
	}
}

func TestApplyInstallmentDoesNotMutateInput(t *testing.T) {
	p := DefaultParams()

	loan := domain.Loan{
		Type:               domain.LoanLongTerm,
		PrincipalAmount:    100000,
		PrincipalRemaining: 100000,
		Status:             domain.LoanApproved,
	}
	before := loan

	if _, _, err := ApplyInstallment(p, loan, "2026-01"); err != nil {
		t.Fatalf("ApplyInstallment() error = %v", err)
	}
	if loan != before {
		t.Errorf("input loan mutated: %+v != %+v", loan, before)
	}
}

func TestApplyInstallmentRoundsRecordedCashOnly(t *testing.T) {
	p := DefaultParams()

	// 10,000/20 = 500 principal; 9,999 x 0.01 = 99.99 interest.
	// Total due 599.99 is recorded as 600 while the accumulators keep the
	// unrounded components.
	loan := domain.Loan{
		Type:               domain.LoanLongTerm,
		PrincipalAmount:    10000,
		PrincipalRemaining: 9999,
		Status:             domain.LoanApproved,
	}

	updated, entry, err := ApplyInstallment(p, loan, "2026-03")
	if err != nil {
		t.Fatalf("ApplyInstallment() error = %v", err)
	}
	if entry.Amount != 600 {
		t.Errorf("recorded amount = %v, want 600", entry.Amount)
	}
	if updated.InterestCollected != 99.99 {
		t.Errorf("InterestCollected = %v, want the unrounded 99.99", updated.InterestCollected)
	}
}
