package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// Loan errors
var (
	ErrLoanNotFound = errors.New("loan not found")
	// ErrLoanNotPayable means an installment was applied to a loan that is
	// not APPROVED (never disbursed, rejected, or already settled).
	ErrLoanNotPayable = errors.New("loan is not in a payable state")
	// ErrNoInstallmentDue means the loan has no computable installment this
	// cycle. Not a failure of the engine: callers must check the preview
	// before offering a record-payment action.
	ErrNoInstallmentDue  = errors.New("no installment due for this loan")
	ErrInvalidLoanStatus = errors.New("invalid loan status transition")
	ErrInsufficientFunds = errors.New("insufficient pool liquidity")
)

// Contribution errors
var (
	ErrContributionExists = errors.New("contribution already recorded for this cycle")
)
