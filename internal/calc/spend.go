// Package calc derives budget spend figures from the transaction list.
// Everything here is pure: no state, no side effects, recomputed whenever
// budgets or transactions change.
package calc

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline-client/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// Spent sums the expense transactions attributable to the budget: type
// expense, matching category id, and dated within the budget's range. Both
// boundary days are inclusive; the end boundary covers the whole calendar
// day. A budget with an unparseable range contributes nothing.
func Spent(budget *domain.Budget, transactions []*domain.Transaction) decimal.Decimal {
	if budget == nil || budget.Category == nil {
		return decimal.Zero
	}
	start, err := domain.ParseBudgetDay(budget.StartDate)
	if err != nil {
		return decimal.Zero
	}
	end, err := domain.ParseBudgetDay(budget.EndDate)
	if err != nil {
		return decimal.Zero
	}
	endExclusive := end.AddDate(0, 0, 1)

	spent := decimal.Zero
	for _, tx := range transactions {
		if tx == nil || tx.Type != domain.TransactionTypeExpense {
			continue
		}
		if categoryID(tx) != budget.Category.ID {
			continue
		}
		if !within(tx.Date, start, endExclusive) {
			continue
		}
		spent = spent.Add(tx.Amount)
	}
	return spent
}

// Remaining is the budget amount minus Spent. It goes negative when the
// budget is overspent; callers render that, it is not clamped.
func Remaining(budget *domain.Budget, transactions []*domain.Transaction) decimal.Decimal {
	if budget == nil {
		return decimal.Zero
	}
	return budget.Amount.Sub(Spent(budget, transactions))
}

// Progress is spent/amount as a percentage. A zero budget amount yields 0
// rather than dividing; overspend is not clamped to 100.
func Progress(budget *domain.Budget, transactions []*domain.Transaction) decimal.Decimal {
	if budget == nil || budget.Amount.IsZero() {
		return decimal.Zero
	}
	return Spent(budget, transactions).Div(budget.Amount).Mul(oneHundred)
}

// Summary holds the derived figures for one budget.
type Summary struct {
	Budget    *domain.Budget
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Progress  decimal.Decimal
}

// Summarize derives figures for every budget against one transaction list.
func Summarize(budgets []*domain.Budget, transactions []*domain.Transaction) []Summary {
	summaries := make([]Summary, 0, len(budgets))
	for _, b := range budgets {
		spent := Spent(b, transactions)
		summary := Summary{
			Budget:    b,
			Spent:     spent,
			Remaining: b.Amount.Sub(spent),
		}
		if !b.Amount.IsZero() {
			summary.Progress = spent.Div(b.Amount).Mul(oneHundred)
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func categoryID(tx *domain.Transaction) string {
	if tx.Category != nil && tx.Category.ID != "" {
		return tx.Category.ID
	}
	return tx.CategoryID
}

func within(t, start, endExclusive time.Time) bool {
	return !t.Before(start) && t.Before(endExclusive)
}
