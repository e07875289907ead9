package api

import (
	"context"
	"net/http"

	"github.com/ledgerline/ledgerline-client/internal/domain"
)

// TransactionAPI implements domain.TransactionAPI over HTTP.
type TransactionAPI struct {
	client *Client
}

// NewTransactionAPI creates a TransactionAPI using the shared transport.
func NewTransactionAPI(client *Client) *TransactionAPI {
	return &TransactionAPI{client: client}
}

// ListForUser fetches all transactions owned by the user.
func (a *TransactionAPI) ListForUser(ctx context.Context, token, userID string) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction
	if err := a.client.do(ctx, http.MethodGet, "/api/transactions/getTransactionsForUser/"+userID, token, nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// Create records a new transaction and returns it with its assigned id.
func (a *TransactionAPI) Create(ctx context.Context, token string, req domain.TransactionCreate) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := a.client.do(ctx, http.MethodPost, "/api/transactions/createTransaction", token, req, &tx)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// Update edits an existing transaction and returns the updated entity.
func (a *TransactionAPI) Update(ctx context.Context, token string, tx *domain.Transaction) (*domain.Transaction, error) {
	var updated domain.Transaction
	err := a.client.do(ctx, http.MethodPut, "/api/transactions/editTransaction/"+tx.ID, token, tx, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a transaction by id.
func (a *TransactionAPI) Delete(ctx context.Context, token, id string) error {
	return a.client.do(ctx, http.MethodDelete, "/api/transactions/deleteTransaction/"+id, token, nil, nil)
}

// ResetForUser deletes every transaction owned by the user.
func (a *TransactionAPI) ResetForUser(ctx context.Context, token, userID string) error {
	return a.client.do(ctx, http.MethodDelete, "/api/transactions/resetTransactions/"+userID, token, nil, nil)
}
