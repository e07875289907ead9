// Package testutil provides hand-written mocks of the domain API
// interfaces for store tests. Each mock keeps simple map/slice state and
// exposes overridable function fields for error injection.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ledgerline/ledgerline-client/internal/domain"
)

// MockSession is a fixed-value domain.SessionReader.
type MockSession struct {
	mu          sync.Mutex
	TokenValue  string
	UserIDValue string
}

// Token returns the configured token.
func (m *MockSession) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.TokenValue
}

// UserID returns the configured user id.
func (m *MockSession) UserID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.UserIDValue
}

// Set replaces the session values.
func (m *MockSession) Set(token, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TokenValue = token
	m.UserIDValue = userID
}

// MockAuthAPI is a mock implementation of domain.AuthAPI
type MockAuthAPI struct {
	LoginFn    func(ctx context.Context, email, password string) (*domain.Session, error)
	RegisterFn func(ctx context.Context, email, password, name string) (string, error)
	MeFn       func(ctx context.Context, token string) (*domain.User, error)

	MeCalls int
}

// Login delegates to LoginFn.
func (m *MockAuthAPI) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return nil, fmt.Errorf("LoginFn not set")
}

// Register delegates to RegisterFn.
func (m *MockAuthAPI) Register(ctx context.Context, email, password, name string) (string, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, email, password, name)
	}
	return "", fmt.Errorf("RegisterFn not set")
}

// Me delegates to MeFn.
func (m *MockAuthAPI) Me(ctx context.Context, token string) (*domain.User, error) {
	m.MeCalls++
	if m.MeFn != nil {
		return m.MeFn(ctx, token)
	}
	return nil, fmt.Errorf("MeFn not set")
}

// MockCategoryAPI is a mock implementation of domain.CategoryAPI
type MockCategoryAPI struct {
	mu         sync.Mutex
	Categories []*domain.Category

	ListFn   func(ctx context.Context, token string) ([]*domain.Category, error)
	CreateFn func(ctx context.Context, token, name string) (*domain.Category, error)
	DeleteFn func(ctx context.Context, token, id string) error

	ListCalls   int
	CreateCalls int
	DeleteCalls int
}

// NewMockCategoryAPI creates an empty MockCategoryAPI.
func NewMockCategoryAPI() *MockCategoryAPI {
	return &MockCategoryAPI{}
}

// AddCategory seeds the mock (helper for tests).
func (m *MockCategoryAPI) AddCategory(c *domain.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Categories = append(m.Categories, c)
}

// List returns the seeded categories.
func (m *MockCategoryAPI) List(ctx context.Context, token string) ([]*domain.Category, error) {
	m.mu.Lock()
	m.ListCalls++
	m.mu.Unlock()
	if m.ListFn != nil {
		return m.ListFn(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Category, len(m.Categories))
	copy(out, m.Categories)
	return out, nil
}

// Create appends a category with a fresh id.
func (m *MockCategoryAPI) Create(ctx context.Context, token, name string) (*domain.Category, error) {
	m.mu.Lock()
	m.CreateCalls++
	m.mu.Unlock()
	if m.CreateFn != nil {
		return m.CreateFn(ctx, token, name)
	}
	c := &domain.Category{ID: uuid.NewString(), Name: name}
	m.AddCategory(c)
	return c, nil
}

// Delete removes a category by id, or reports not found.
func (m *MockCategoryAPI) Delete(ctx context.Context, token, id string) error {
	m.mu.Lock()
	m.DeleteCalls++
	m.mu.Unlock()
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, token, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.Categories {
		if c.ID == id {
			m.Categories = append(m.Categories[:i], m.Categories[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockBudgetAPI is a mock implementation of domain.BudgetAPI
type MockBudgetAPI struct {
	mu      sync.Mutex
	Budgets []*domain.Budget

	ListFn          func(ctx context.Context, token, userID string) ([]*domain.Budget, error)
	CreateFn        func(ctx context.Context, token, userID string, req domain.BudgetCreate) (*domain.Budget, error)
	UpdateFn        func(ctx context.Context, token, budgetID, userID string, req domain.BudgetUpdate) (*domain.Budget, error)
	DeleteFn        func(ctx context.Context, token, budgetID, userID string) error
	ResetSpendingFn func(ctx context.Context, token, userID string) error

	ResetSpendingCalls int
}

// NewMockBudgetAPI creates an empty MockBudgetAPI.
func NewMockBudgetAPI() *MockBudgetAPI {
	return &MockBudgetAPI{}
}

// AddBudget seeds the mock (helper for tests).
func (m *MockBudgetAPI) AddBudget(b *domain.Budget) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Budgets = append(m.Budgets, b)
}

// ListForUser returns the seeded budgets.
func (m *MockBudgetAPI) ListForUser(ctx context.Context, token, userID string) ([]*domain.Budget, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, token, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Budget, len(m.Budgets))
	copy(out, m.Budgets)
	return out, nil
}

// Create appends a budget, resolving the category by name with a fresh id.
func (m *MockBudgetAPI) Create(ctx context.Context, token, userID string, req domain.BudgetCreate) (*domain.Budget, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, token, userID, req)
	}
	b := &domain.Budget{
		ID:        uuid.NewString(),
		Category:  &domain.Category{ID: uuid.NewString(), Name: req.CategoryName},
		Amount:    req.Amount,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	m.AddBudget(b)
	return b, nil
}

// Update replaces the matching budget, or reports not found.
func (m *MockBudgetAPI) Update(ctx context.Context, token, budgetID, userID string, req domain.BudgetUpdate) (*domain.Budget, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, token, budgetID, userID, req)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.Budgets {
		if b.ID == budgetID {
			updated := &domain.Budget{
				ID:        b.ID,
				Category:  b.Category,
				Amount:    req.Amount,
				StartDate: req.StartDate,
				EndDate:   req.EndDate,
			}
			m.Budgets[i] = updated
			return updated, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Delete removes a budget by id, or reports not found.
func (m *MockBudgetAPI) Delete(ctx context.Context, token, budgetID, userID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, token, budgetID, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range m.Budgets {
		if b.ID == budgetID {
			m.Budgets = append(m.Budgets[:i], m.Budgets[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ResetSpending delegates to ResetSpendingFn, defaulting to success.
func (m *MockBudgetAPI) ResetSpending(ctx context.Context, token, userID string) error {
	m.mu.Lock()
	m.ResetSpendingCalls++
	m.mu.Unlock()
	if m.ResetSpendingFn != nil {
		return m.ResetSpendingFn(ctx, token, userID)
	}
	return nil
}

// MockTransactionAPI is a mock implementation of domain.TransactionAPI
type MockTransactionAPI struct {
	mu           sync.Mutex
	Transactions []*domain.Transaction

	ListFn   func(ctx context.Context, token, userID string) ([]*domain.Transaction, error)
	CreateFn func(ctx context.Context, token string, req domain.TransactionCreate) (*domain.Transaction, error)
	UpdateFn func(ctx context.Context, token string, tx *domain.Transaction) (*domain.Transaction, error)
	DeleteFn func(ctx context.Context, token, id string) error
	ResetFn  func(ctx context.Context, token, userID string) error

	ResetCalls int
}

// NewMockTransactionAPI creates an empty MockTransactionAPI.
func NewMockTransactionAPI() *MockTransactionAPI {
	return &MockTransactionAPI{}
}

// AddTransaction seeds the mock (helper for tests).
func (m *MockTransactionAPI) AddTransaction(tx *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions = append(m.Transactions, tx)
}

// ListForUser returns the seeded transactions.
func (m *MockTransactionAPI) ListForUser(ctx context.Context, token, userID string) ([]*domain.Transaction, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, token, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Transaction, len(m.Transactions))
	copy(out, m.Transactions)
	return out, nil
}

// Create appends a transaction with a fresh id.
func (m *MockTransactionAPI) Create(ctx context.Context, token string, req domain.TransactionCreate) (*domain.Transaction, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, token, req)
	}
	tx := &domain.Transaction{
		ID:               uuid.NewString(),
		Type:             req.Type,
		Amount:           req.Amount,
		Date:             req.Date,
		CategoryID:       req.CategoryID,
		Category:         req.Category,
		IncomeSourceName: req.IncomeSourceName,
	}
	m.AddTransaction(tx)
	return tx, nil
}

// Update replaces the matching transaction, or reports not found.
func (m *MockTransactionAPI) Update(ctx context.Context, token string, tx *domain.Transaction) (*domain.Transaction, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, token, tx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.Transactions {
		if t.ID == tx.ID {
			m.Transactions[i] = tx
			return tx, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Delete removes a transaction by id, or reports not found.
func (m *MockTransactionAPI) Delete(ctx context.Context, token, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, token, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.Transactions {
		if t.ID == id {
			m.Transactions = append(m.Transactions[:i], m.Transactions[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ResetForUser clears the seeded transactions.
func (m *MockTransactionAPI) ResetForUser(ctx context.Context, token, userID string) error {
	m.mu.Lock()
	m.ResetCalls++
	m.mu.Unlock()
	if m.ResetFn != nil {
		return m.ResetFn(ctx, token, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions = nil
	return nil
}
