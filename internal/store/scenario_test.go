package store

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline-client/internal/api"
	"github.com/ledgerline/ledgerline-client/internal/calc"
	"github.com/ledgerline/ledgerline-client/internal/domain"
	"github.com/ledgerline/ledgerline-client/internal/event"
	"github.com/ledgerline/ledgerline-client/internal/mockapi"
	"github.com/ledgerline/ledgerline-client/internal/session"
)

type fixture struct {
	server       *mockapi.Server
	session      *session.Store
	categories   *CategoryStore
	budgets      *BudgetStore
	transactions *TransactionStore
}

// newFixture wires the full state layer against an in-process backend and
// logs a fresh user in.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	server := mockapi.New(zerolog.Nop())
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	client := api.NewClient(ts.URL)
	authAPI := api.NewAuthAPI(client)
	categoryAPI := api.NewCategoryAPI(client)
	budgetAPI := api.NewBudgetAPI(client)
	transactionAPI := api.NewTransactionAPI(client)

	bus := event.NewBus()
	slot := session.NewSlot(filepath.Join(t.TempDir(), "session.json"))
	sess, err := session.NewStore(slot, authAPI, bus)
	require.NoError(t, err)
	t.Cleanup(sess.Close)

	f := &fixture{
		server:       server,
		session:      sess,
		categories:   NewCategoryStore(categoryAPI, sess, bus, zerolog.Nop()),
		budgets:      NewBudgetStore(budgetAPI, sess, bus, zerolog.Nop()),
		transactions: NewTransactionStore(transactionAPI, categoryAPI, budgetAPI, sess, bus, zerolog.Nop()),
	}
	t.Cleanup(f.categories.Close)
	t.Cleanup(f.budgets.Close)
	t.Cleanup(f.transactions.Close)

	ctx := context.Background()
	_, err = authAPI.Register(ctx, "a@b.test", "hunter22", "Alice")
	require.NoError(t, err)
	login, err := authAPI.Login(ctx, "a@b.test", "hunter22")
	require.NoError(t, err)
	require.NoError(t, sess.Login(login))

	return f
}

func TestScenario_BudgetSpendReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.categories.Add(ctx, "Food")
	require.NoError(t, err)

	budget, err := f.budgets.Add(ctx, domain.BudgetCreate{
		CategoryName: "Food",
		Amount:       decimal.NewFromInt(1000),
		StartDate:    "01/01/2025",
		EndDate:      "31/01/2025",
	})
	require.NoError(t, err)

	_, err = f.transactions.Add(ctx, domain.TransactionCreate{
		Type:       domain.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(300),
		Date:       time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC),
		CategoryID: budget.Category.ID,
	})
	require.NoError(t, err)

	// The transaction mutation triggered a budget refetch over the bus.
	budgets := f.budgets.Budgets()
	require.Len(t, budgets, 1)

	txs := f.transactions.Transactions()
	assert.Equal(t, "300.00", calc.Spent(budgets[0], txs).StringFixed(2))
	assert.Equal(t, "700.00", calc.Remaining(budgets[0], txs).StringFixed(2))
	assert.Equal(t, "30.0", calc.Progress(budgets[0], txs).StringFixed(1))
}

func TestScenario_BudgetCreateImplicitlyCreatesCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.budgets.Add(ctx, domain.BudgetCreate{
		CategoryName: "Travel",
		Amount:       decimal.NewFromInt(500),
		StartDate:    "01/02/2025",
		EndDate:      "28/02/2025",
	})
	require.NoError(t, err)

	// The category store refetched on the budget mutation and sees the
	// implicitly created category.
	categories := f.categories.Categories()
	require.Len(t, categories, 1)
	assert.Equal(t, "Travel", categories[0].Name)
}

func TestScenario_ResetAllSurvivesSpendResetFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	budget, err := f.budgets.Add(ctx, domain.BudgetCreate{
		CategoryName: "Food",
		Amount:       decimal.NewFromInt(1000),
		StartDate:    "01/01/2025",
		EndDate:      "31/01/2025",
	})
	require.NoError(t, err)

	_, err = f.transactions.Add(ctx, domain.TransactionCreate{
		Type:       domain.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(300),
		Date:       time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC),
		CategoryID: budget.Category.ID,
	})
	require.NoError(t, err)

	f.server.SetFailSpendReset(true)
	err = f.transactions.ResetAll(ctx)
	assert.ErrorIs(t, err, domain.ErrSpendResetFailed)
	assert.Empty(t, f.transactions.Transactions())
}

func TestScenario_LogoutClearsAllStores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.categories.Add(ctx, "Food")
	require.NoError(t, err)

	require.NoError(t, f.session.Logout(session.LogoutExplicit))

	assert.Empty(t, f.categories.Categories())
	assert.Empty(t, f.budgets.Budgets())
	assert.Empty(t, f.transactions.Transactions())
}
