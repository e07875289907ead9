package calc

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerline/ledgerline-client/internal/domain"
)

var food = &domain.Category{ID: "cat-food", Name: "food"}
var travel = &domain.Category{ID: "cat-travel", Name: "travel"}

func foodBudget(amount int64) *domain.Budget {
	return &domain.Budget{
		ID:        "b1",
		Category:  food,
		Amount:    decimal.NewFromInt(amount),
		StartDate: "01/01/2025",
		EndDate:   "31/01/2025",
	}
}

func expense(category *domain.Category, amount int64, date time.Time) *domain.Transaction {
	return &domain.Transaction{
		ID:         "t-" + date.Format("20060102"),
		Type:       domain.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(amount),
		Date:       date,
		CategoryID: category.ID,
		Category:   category,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestSpent_MatchingExpenseWithinRange(t *testing.T) {
	budget := foodBudget(1000)
	txs := []*domain.Transaction{
		expense(food, 300, day(2025, time.January, 15)),
	}

	spent := Spent(budget, txs)
	assert.Equal(t, "300.00", spent.StringFixed(2))
	assert.Equal(t, "700.00", Remaining(budget, txs).StringFixed(2))
	assert.Equal(t, "30.0", Progress(budget, txs).StringFixed(1))
}

func TestSpent_ExcludesIncomeAndOtherCategories(t *testing.T) {
	budget := foodBudget(1000)
	txs := []*domain.Transaction{
		expense(food, 200, day(2025, time.January, 10)),
		expense(travel, 500, day(2025, time.January, 10)),
		{
			ID:               "income-1",
			Type:             domain.TransactionTypeIncome,
			Amount:           decimal.NewFromInt(4000),
			Date:             day(2025, time.January, 10),
			IncomeSourceName: "salary",
		},
	}

	assert.Equal(t, "200.00", Spent(budget, txs).StringFixed(2))
}

func TestSpent_ExcludesOutOfRange(t *testing.T) {
	budget := foodBudget(1000)
	txs := []*domain.Transaction{
		expense(food, 100, day(2024, time.December, 31)),
		expense(food, 100, day(2025, time.February, 1)),
	}

	assert.True(t, Spent(budget, txs).IsZero())
}

func TestSpent_BoundaryDaysAreInclusive(t *testing.T) {
	budget := foodBudget(1000)
	txs := []*domain.Transaction{
		expense(food, 50, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)),
		// Late on the last day of the range still counts.
		expense(food, 70, time.Date(2025, time.January, 31, 23, 59, 59, 0, time.UTC)),
	}

	assert.Equal(t, "120.00", Spent(budget, txs).StringFixed(2))
}

func TestSpent_MatchesOnEmbeddedCategoryOrID(t *testing.T) {
	budget := foodBudget(1000)
	byEmbedded := expense(food, 25, day(2025, time.January, 5))
	byEmbedded.CategoryID = ""
	byID := expense(food, 75, day(2025, time.January, 6))
	byID.Category = nil

	assert.Equal(t, "100.00", Spent(budget, []*domain.Transaction{byEmbedded, byID}).StringFixed(2))
}

func TestSpent_UnparseableRangeContributesNothing(t *testing.T) {
	budget := foodBudget(1000)
	budget.StartDate = "2025-01-01"

	txs := []*domain.Transaction{expense(food, 300, day(2025, time.January, 15))}
	assert.True(t, Spent(budget, txs).IsZero())
}

func TestRemaining_GoesNegativeWhenOverspent(t *testing.T) {
	budget := foodBudget(100)
	txs := []*domain.Transaction{
		expense(food, 150, day(2025, time.January, 15)),
	}

	assert.Equal(t, "-50.00", Remaining(budget, txs).StringFixed(2))
	assert.Equal(t, "150.0", Progress(budget, txs).StringFixed(1))
}

func TestProgress_ZeroAmountIsZeroNotInfinity(t *testing.T) {
	budget := foodBudget(0)
	txs := []*domain.Transaction{
		expense(food, 10, day(2025, time.January, 15)),
	}

	assert.True(t, Progress(budget, txs).IsZero())
}

func TestSummarize_CoversAllBudgets(t *testing.T) {
	budgets := []*domain.Budget{
		foodBudget(1000),
		{
			ID:        "b2",
			Category:  travel,
			Amount:    decimal.NewFromInt(500),
			StartDate: "01/01/2025",
			EndDate:   "31/01/2025",
		},
	}
	txs := []*domain.Transaction{
		expense(food, 300, day(2025, time.January, 15)),
		expense(travel, 600, day(2025, time.January, 20)),
	}

	summaries := Summarize(budgets, txs)
	assert.Len(t, summaries, 2)
	assert.Equal(t, "700.00", summaries[0].Remaining.StringFixed(2))
	assert.Equal(t, "-100.00", summaries[1].Remaining.StringFixed(2))
	assert.Equal(t, "120.0", summaries[1].Progress.StringFixed(1))
}
