package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Budget is a spending cap for one category over a date range. Dates are
// calendar-day granularity strings in BudgetDateLayout. The backend embeds
// the resolved category; it may create the category implicitly when a
// budget is created for a name that does not exist yet.
type Budget struct {
	ID        string          `json:"id"`
	Category  *Category       `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
}

// BudgetCreate is the payload for creating a budget. The category is sent
// by name; the backend resolves or creates it and returns it embedded.
type BudgetCreate struct {
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
	StartDate    string          `json:"startDate"`
	EndDate      string          `json:"endDate"`
}

// BudgetUpdate is the payload for editing an existing budget.
type BudgetUpdate struct {
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
	StartDate    string          `json:"startDate"`
	EndDate      string          `json:"endDate"`
}

// Validate applies the presence checks performed before a budget is sent to
// the backend. startDate <= endDate is not enforced here, the backend owns
// that invariant.
func (b *BudgetCreate) Validate() error {
	if b.CategoryName == "" {
		return ErrNameRequired
	}
	if !b.Amount.IsPositive() {
		return ErrAmountRequired
	}
	if b.StartDate == "" || b.EndDate == "" {
		return ErrDatesRequired
	}
	if _, err := ParseBudgetDay(b.StartDate); err != nil {
		return ErrInvalidInput
	}
	if _, err := ParseBudgetDay(b.EndDate); err != nil {
		return ErrInvalidInput
	}
	return nil
}

// BudgetAPI is the budget surface of the remote backend.
type BudgetAPI interface {
	ListForUser(ctx context.Context, token, userID string) ([]*Budget, error)
	Create(ctx context.Context, token, userID string, req BudgetCreate) (*Budget, error)
	Update(ctx context.Context, token, budgetID, userID string, req BudgetUpdate) (*Budget, error)
	Delete(ctx context.Context, token, budgetID, userID string) error
	ResetSpending(ctx context.Context, token, userID string) error
}

// SpendResetter is the slice of BudgetAPI the transaction store needs for
// the companion call after a bulk transaction reset.
type SpendResetter interface {
	ResetSpending(ctx context.Context, token, userID string) error
}
