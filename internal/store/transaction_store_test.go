package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline-client/internal/domain"
	"github.com/ledgerline/ledgerline-client/internal/event"
	"github.com/ledgerline/ledgerline-client/internal/testutil"
)

func newTransactionStore(t *testing.T, api *testutil.MockTransactionAPI, budgetAPI *testutil.MockBudgetAPI, sess domain.SessionReader) *TransactionStore {
	t.Helper()
	store := NewTransactionStore(api, testutil.NewMockCategoryAPI(), budgetAPI, sess, event.NewBus(), zerolog.Nop())
	t.Cleanup(store.Close)
	return store
}

func expenseCreate() domain.TransactionCreate {
	return domain.TransactionCreate{
		Type:       domain.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(300),
		Date:       time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC),
		CategoryID: "c1",
		Category:   &domain.Category{ID: "c1", Name: "food"},
	}
}

func TestTransactionStore_AddAppendsOnSuccess(t *testing.T) {
	api := testutil.NewMockTransactionAPI()
	store := newTransactionStore(t, api, testutil.NewMockBudgetAPI(), authedSession())

	tx, err := store.Add(context.Background(), expenseCreate())
	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID)
	assert.Len(t, store.Transactions(), 1)
}

func TestTransactionStore_AddValidates(t *testing.T) {
	store := newTransactionStore(t, testutil.NewMockTransactionAPI(), testutil.NewMockBudgetAPI(), authedSession())

	req := expenseCreate()
	req.CategoryID = ""
	_, err := store.Add(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrCategoryRequired)

	income := domain.TransactionCreate{
		Type:   domain.TransactionTypeIncome,
		Amount: decimal.NewFromInt(100),
		Date:   time.Now(),
	}
	_, err = store.Add(context.Background(), income)
	assert.ErrorIs(t, err, domain.ErrSourceRequired)
}

func TestTransactionStore_AddRequiresAuthentication(t *testing.T) {
	api := testutil.NewMockTransactionAPI()
	store := newTransactionStore(t, api, testutil.NewMockBudgetAPI(), &testutil.MockSession{})

	_, err := store.Add(context.Background(), expenseCreate())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Empty(t, store.Transactions())
}

func TestTransactionStore_UpdateReplacesAndClearsEditing(t *testing.T) {
	api := testutil.NewMockTransactionAPI()
	store := newTransactionStore(t, api, testutil.NewMockBudgetAPI(), authedSession())

	tx, err := store.Add(context.Background(), expenseCreate())
	require.NoError(t, err)

	store.StartEdit(tx)
	require.NotNil(t, store.Editing())

	edited := *tx
	edited.Amount = decimal.NewFromInt(450)
	updated, err := store.Update(context.Background(), &edited)
	require.NoError(t, err)
	assert.Equal(t, "450.00", updated.Amount.StringFixed(2))

	assert.Nil(t, store.Editing())
	txs := store.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, "450.00", txs[0].Amount.StringFixed(2))
}

func TestTransactionStore_UpdateRequiresID(t *testing.T) {
	store := newTransactionStore(t, testutil.NewMockTransactionAPI(), testutil.NewMockBudgetAPI(), authedSession())

	_, err := store.Update(context.Background(), &domain.Transaction{})
	assert.ErrorIs(t, err, domain.ErrMissingID)
}

func TestTransactionStore_DeleteUnknownIDLeavesStateIntact(t *testing.T) {
	api := testutil.NewMockTransactionAPI()
	store := newTransactionStore(t, api, testutil.NewMockBudgetAPI(), authedSession())

	_, err := store.Add(context.Background(), expenseCreate())
	require.NoError(t, err)

	err = store.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, store.Transactions(), 1)
}

func TestTransactionStore_CancelEditClearsMarker(t *testing.T) {
	store := newTransactionStore(t, testutil.NewMockTransactionAPI(), testutil.NewMockBudgetAPI(), authedSession())

	store.StartEdit(&domain.Transaction{ID: "t1"})
	store.CancelEdit()
	assert.Nil(t, store.Editing())
}

func TestTransactionStore_ResetAllClearsListAndResetsSpending(t *testing.T) {
	api := testutil.NewMockTransactionAPI()
	budgetAPI := testutil.NewMockBudgetAPI()
	store := newTransactionStore(t, api, budgetAPI, authedSession())

	_, err := store.Add(context.Background(), expenseCreate())
	require.NoError(t, err)

	require.NoError(t, store.ResetAll(context.Background()))
	assert.Empty(t, store.Transactions())
	assert.Equal(t, 1, budgetAPI.ResetSpendingCalls)
}

func TestTransactionStore_ResetAllReportsSpendResetFailureAfterClearing(t *testing.T) {
	api := testutil.NewMockTransactionAPI()
	budgetAPI := testutil.NewMockBudgetAPI()
	budgetAPI.ResetSpendingFn = func(context.Context, string, string) error {
		return errors.New("spending reset unavailable")
	}
	store := newTransactionStore(t, api, budgetAPI, authedSession())

	_, err := store.Add(context.Background(), expenseCreate())
	require.NoError(t, err)

	err = store.ResetAll(context.Background())
	// The local list is cleared even though the companion call failed.
	assert.ErrorIs(t, err, domain.ErrSpendResetFailed)
	assert.Empty(t, store.Transactions())
}

func TestTransactionStore_ResetAllAbortsWhenTransactionResetFails(t *testing.T) {
	api := testutil.NewMockTransactionAPI()
	boom := errors.New("backend unavailable")
	api.ResetFn = func(context.Context, string, string) error { return boom }
	budgetAPI := testutil.NewMockBudgetAPI()
	store := newTransactionStore(t, api, budgetAPI, authedSession())

	_, err := store.Add(context.Background(), expenseCreate())
	require.NoError(t, err)

	err = store.ResetAll(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrSpendResetFailed)
	assert.Len(t, store.Transactions(), 1)
	assert.Equal(t, 0, budgetAPI.ResetSpendingCalls)
}

func TestTransactionStore_FetchUnauthenticatedClearsState(t *testing.T) {
	api := testutil.NewMockTransactionAPI()
	api.AddTransaction(&domain.Transaction{ID: "t1", Type: domain.TransactionTypeIncome, Amount: decimal.NewFromInt(5), IncomeSourceName: "salary"})
	store := newTransactionStore(t, api, testutil.NewMockBudgetAPI(), &testutil.MockSession{})

	require.NoError(t, store.Fetch(context.Background()))
	assert.Empty(t, store.Transactions())
	assert.Empty(t, store.Categories())
}
