package domain

import "errors"

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNameRequired     = errors.New("name is required")
	ErrAmountRequired   = errors.New("amount must be a positive value")
	ErrDatesRequired    = errors.New("start and end dates are required")
	ErrCategoryRequired = errors.New("category is required for expense transactions")
	ErrSourceRequired   = errors.New("income source is required for income transactions")
	ErrMissingID        = errors.New("id is required")

	// ErrSpendResetFailed marks the non-fatal tail of a transaction reset:
	// the transactions are already cleared, only the companion budget
	// spending reset failed. Callers report it, they must not roll back.
	ErrSpendResetFailed = errors.New("budget spending reset failed")
)

// Validation constants
const (
	MaxCategoryNameLength = 100
)
