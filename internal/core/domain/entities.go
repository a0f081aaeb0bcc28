package domain

import (
	"strings"
	"time"
)

// Role represents user role in the system
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// LoanType identifies the repayment policy of a loan
type LoanType string

const (
	// LoanShortTerm is a flat-rate bullet loan: the whole principal plus a
	// fixed number of months of interest settled in one installment.
	LoanShortTerm LoanType = "SHORT_TERM"
	// LoanLongTerm amortizes the principal in equal slices over a fixed
	// horizon, with interest charged on the declining balance.
	LoanLongTerm LoanType = "LONG_TERM"
)

// LoanStatus is the lifecycle state of a loan
type LoanStatus string

const (
	LoanPending  LoanStatus = "PENDING"
	LoanApproved LoanStatus = "APPROVED"
	LoanRejected LoanStatus = "REJECTED"
	LoanPaid     LoanStatus = "PAID"
)

// ContributionStatus marks whether a ledger entry was actually collected
type ContributionStatus string

const (
	ContributionPaid    ContributionStatus = "PAID"
	ContributionPending ContributionStatus = "PENDING"
)

// ContributionKind distinguishes ordinary pool contributions from entries
// generated by loan installments. Installment entries count toward cash
// totals but not toward pool contribution totals.
type ContributionKind string

const (
	KindContribution ContributionKind = "CONTRIBUTION"
	KindInstallment  ContributionKind = "INSTALLMENT"
)

// User represents a community member or the administrator.
// Immutable once created except for deletion; role is fixed at creation.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	JoinedDate time.Time `json:"joined_date"`
}

// Surname returns the last whitespace-delimited token of the user's name.
// It seeds the member login credential; the ledger engine never reads it.
func (u User) Surname() string {
	fields := strings.Fields(u.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// Contribution is one recorded cash inflow: either the fixed monthly
// contribution or a loan installment. Append-only, never mutated.
type Contribution struct {
	ID     string             `json:"id"`
	UserID string             `json:"user_id"`
	Month  string             `json:"month"` // billing cycle, YYYY-MM
	Amount float64            `json:"amount"`
	Status ContributionStatus `json:"status"`
	Kind   ContributionKind   `json:"kind"`
}

// Loan represents one loan over its whole lifecycle.
//
// After approval the following hold: PrincipalRemaining stays within
// [0, PrincipalAmount]; RepaidAmount + PrincipalRemaining equals
// PrincipalAmount; Status is PAID exactly when PrincipalRemaining is zero;
// MonthsElapsed grows by one per recorded installment.
type Loan struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	Type               LoanType   `json:"type"`
	PrincipalAmount    float64    `json:"principal_amount"`
	PrincipalRemaining float64    `json:"principal_remaining"`
	Status             LoanStatus `json:"status"`
	RequestDate        time.Time  `json:"request_date"`
	ApprovalDate       *time.Time `json:"approval_date,omitempty"`
	RepaidAmount       float64    `json:"repaid_amount"`
	InterestCollected  float64    `json:"interest_collected"`
	MonthsElapsed      int        `json:"months_elapsed"`
	LastPaymentMonth   string     `json:"last_payment_month,omitempty"` // YYYY-MM, "" if none
}

// LedgerState is the aggregate snapshot of the whole fund. The ledger
// engine receives it read-only and returns replacement entities; the state
// store owns mutation and replication.
type LedgerState struct {
	Users                 []User         `json:"users"`
	Contributions         []Contribution `json:"contributions"`
	Loans                 []Loan         `json:"loans"`
	InitialInterestEarned float64        `json:"initial_interest_earned"`
	BankInterest          float64        `json:"bank_interest"`
	LastUpdated           int64          `json:"last_updated"` // unix milliseconds
}
