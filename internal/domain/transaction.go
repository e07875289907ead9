package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction is a single income or expense record. Expense transactions
// carry a category reference; income transactions carry a free-form source
// name instead.
type Transaction struct {
	ID               string          `json:"id"`
	Type             TransactionType `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	Date             time.Time       `json:"date"`
	CategoryID       string          `json:"categoryId,omitempty"`
	Category         *Category       `json:"category,omitempty"`
	IncomeSourceName string          `json:"incomeSourceName,omitempty"`
}

// TransactionCreate is the payload for recording a new transaction.
type TransactionCreate struct {
	Type             TransactionType `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	Date             time.Time       `json:"date"`
	CategoryID       string          `json:"categoryId,omitempty"`
	Category         *Category       `json:"category,omitempty"`
	IncomeSourceName string          `json:"incomeSourceName,omitempty"`
}

// Validate applies the presence checks performed before a transaction is
// sent to the backend.
func (t *TransactionCreate) Validate() error {
	if t.Type != TransactionTypeIncome && t.Type != TransactionTypeExpense {
		return ErrInvalidInput
	}
	if !t.Amount.IsPositive() {
		return ErrAmountRequired
	}
	if t.Type == TransactionTypeExpense && t.CategoryID == "" {
		return ErrCategoryRequired
	}
	if t.Type == TransactionTypeIncome && t.IncomeSourceName == "" {
		return ErrSourceRequired
	}
	return nil
}

// TransactionAPI is the transaction surface of the remote backend.
type TransactionAPI interface {
	ListForUser(ctx context.Context, token, userID string) ([]*Transaction, error)
	Create(ctx context.Context, token string, req TransactionCreate) (*Transaction, error)
	Update(ctx context.Context, token string, tx *Transaction) (*Transaction, error)
	Delete(ctx context.Context, token, id string) error
	ResetForUser(ctx context.Context, token, userID string) error
}
