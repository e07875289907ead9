package api

import (
	"context"
	"net/http"

	"github.com/ledgerline/ledgerline-client/internal/domain"
)

// BudgetAPI implements domain.BudgetAPI over HTTP.
type BudgetAPI struct {
	client *Client
}

// NewBudgetAPI creates a BudgetAPI using the shared transport.
func NewBudgetAPI(client *Client) *BudgetAPI {
	return &BudgetAPI{client: client}
}

// ListForUser fetches all budgets owned by the user.
func (a *BudgetAPI) ListForUser(ctx context.Context, token, userID string) ([]*domain.Budget, error) {
	var budgets []*domain.Budget
	if err := a.client.do(ctx, http.MethodGet, "/api/budgets/getBudgetsForUser/"+userID, token, nil, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

// Create posts a new budget. The backend resolves or creates the category
// by name and returns it embedded in the budget.
func (a *BudgetAPI) Create(ctx context.Context, token, userID string, req domain.BudgetCreate) (*domain.Budget, error) {
	var budget domain.Budget
	err := a.client.do(ctx, http.MethodPost, "/api/budgets/createBudget/"+userID, token, req, &budget)
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

// Update edits an existing budget and returns the updated entity.
func (a *BudgetAPI) Update(ctx context.Context, token, budgetID, userID string, req domain.BudgetUpdate) (*domain.Budget, error) {
	var budget domain.Budget
	err := a.client.do(ctx, http.MethodPut, "/api/budgets/editBudget/"+budgetID+"/"+userID, token, req, &budget)
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

// Delete removes a budget by id.
func (a *BudgetAPI) Delete(ctx context.Context, token, budgetID, userID string) error {
	return a.client.do(ctx, http.MethodDelete, "/api/budgets/deleteBudget/"+budgetID+"/"+userID, token, nil, nil)
}

// ResetSpending zeroes the backend's recorded spending for every budget of
// the user. Companion call to a bulk transaction reset.
func (a *BudgetAPI) ResetSpending(ctx context.Context, token, userID string) error {
	return a.client.do(ctx, http.MethodPost, "/api/budgets/resetBudgetSpending/"+userID, token, nil, nil)
}
