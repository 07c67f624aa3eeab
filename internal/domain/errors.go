package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidAmount    = errors.New("amount must be a positive integer")
	ErrBadCredentials   = errors.New("email or password is incorrect")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrInvalidEmail     = errors.New("email address is malformed")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordNoSymbol = errors.New("password must contain an @ character")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrNameRequired     = errors.New("name is required")
	ErrImageRequired    = errors.New("image url is required")
	ErrBudgetExceeded   = errors.New("budget exceeded")

	// ErrMissingBudget flags a transaction recorded for a month with no
	// total-budget row. The transaction is still persisted; the caller
	// surfaces this as a warning, not a failure.
	ErrMissingBudget = errors.New("no monthly budget set")
)

// Validation constants
const (
	MinPasswordLength = 6
)

// BudgetExceededError reports an allocation or spend larger than the month's
// remaining balance, carrying both sides so the UI can show "attempted /
// remaining".
type BudgetExceededError struct {
	Amount    int64
	Remaining int64
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("amount %d exceeds remaining balance %d", e.Amount, e.Remaining)
}

// Is lets errors.Is(err, ErrBudgetExceeded) match.
func (e *BudgetExceededError) Is(target error) bool {
	return target == ErrBudgetExceeded
}
