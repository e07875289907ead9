package mockapi

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerline/ledgerline-client/internal/domain"
)

type account struct {
	id           string
	email        string
	name         string
	passwordHash []byte
}

// state is the in-memory backend data, keyed per user where the API is
// per-user. It is safe for concurrent use.
type state struct {
	mu           sync.Mutex
	accounts     map[string]*account // by email
	tokens       map[string]string   // token -> user id
	categories   map[string][]*domain.Category
	budgets      map[string][]*domain.Budget
	transactions map[string][]*domain.Transaction
	spent        map[string]decimal.Decimal // budget id -> recorded spending
}

func newState() *state {
	return &state{
		accounts:     make(map[string]*account),
		tokens:       make(map[string]string),
		categories:   make(map[string][]*domain.Category),
		budgets:      make(map[string][]*domain.Budget),
		transactions: make(map[string][]*domain.Transaction),
		spent:        make(map[string]decimal.Decimal),
	}
}

func (s *state) register(email, password, name string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[email]; exists {
		return "", errEmailTaken
	}
	acc := &account{
		id:           uuid.NewString(),
		email:        email,
		name:         name,
		passwordHash: hash,
	}
	s.accounts[email] = acc
	return acc.id, nil
}

func (s *state) login(email, password string) (token, userID string, err error) {
	s.mu.Lock()
	acc, ok := s.accounts[email]
	s.mu.Unlock()
	if !ok {
		return "", "", errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return "", "", errBadCredentials
	}

	token = uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = acc.id
	s.mu.Unlock()
	return token, acc.id, nil
}

func (s *state) userForToken(token string) (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[token]
	if !ok {
		return nil, false
	}
	for _, acc := range s.accounts {
		if acc.id == userID {
			user := &domain.User{ID: acc.id, Email: acc.email}
			if acc.name != "" {
				name := acc.name
				user.Name = &name
			}
			return user, true
		}
	}
	return nil, false
}

func (s *state) listCategories(userID string) []*domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Category, len(s.categories[userID]))
	copy(out, s.categories[userID])
	return out
}

func (s *state) createCategory(userID, name string) *domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveCategoryLocked(userID, name)
}

// resolveCategoryLocked finds a category by name (case-insensitive) or
// creates it. Budget creation relies on the implicit-create path.
func (s *state) resolveCategoryLocked(userID, name string) *domain.Category {
	for _, c := range s.categories[userID] {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	c := &domain.Category{ID: uuid.NewString(), Name: name}
	s.categories[userID] = append(s.categories[userID], c)
	return c
}

func (s *state) deleteCategory(userID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.categories[userID] {
		if c.ID == id {
			s.categories[userID] = append(s.categories[userID][:i], s.categories[userID][i+1:]...)
			return true
		}
	}
	return false
}

func (s *state) listBudgets(userID string) []*domain.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Budget, len(s.budgets[userID]))
	copy(out, s.budgets[userID])
	return out
}

func (s *state) createBudget(userID string, req domain.BudgetCreate) *domain.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := &domain.Budget{
		ID:        uuid.NewString(),
		Category:  s.resolveCategoryLocked(userID, req.CategoryName),
		Amount:    req.Amount,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	s.budgets[userID] = append(s.budgets[userID], b)
	return b
}

func (s *state) updateBudget(userID, budgetID string, req domain.BudgetUpdate) (*domain.Budget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.budgets[userID] {
		if b.ID == budgetID {
			updated := &domain.Budget{
				ID:        b.ID,
				Category:  b.Category,
				Amount:    req.Amount,
				StartDate: req.StartDate,
				EndDate:   req.EndDate,
			}
			if req.CategoryName != "" && !strings.EqualFold(req.CategoryName, b.Category.Name) {
				updated.Category = s.resolveCategoryLocked(userID, req.CategoryName)
			}
			s.budgets[userID][i] = updated
			return updated, true
		}
	}
	return nil, false
}

func (s *state) deleteBudget(userID, budgetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.budgets[userID] {
		if b.ID == budgetID {
			s.budgets[userID] = append(s.budgets[userID][:i], s.budgets[userID][i+1:]...)
			delete(s.spent, budgetID)
			return true
		}
	}
	return false
}

func (s *state) resetBudgetSpending(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.budgets[userID] {
		s.spent[b.ID] = decimal.Zero
	}
}

func (s *state) listTransactions(userID string) []*domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Transaction, len(s.transactions[userID]))
	copy(out, s.transactions[userID])
	return out
}

func (s *state) createTransaction(userID string, req domain.TransactionCreate) *domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &domain.Transaction{
		ID:               uuid.NewString(),
		Type:             req.Type,
		Amount:           req.Amount,
		Date:             req.Date,
		CategoryID:       req.CategoryID,
		Category:         req.Category,
		IncomeSourceName: req.IncomeSourceName,
	}
	if tx.Type == domain.TransactionTypeExpense && tx.Category == nil && tx.CategoryID != "" {
		for _, c := range s.categories[userID] {
			if c.ID == tx.CategoryID {
				tx.Category = c
				break
			}
		}
	}
	s.transactions[userID] = append(s.transactions[userID], tx)
	s.recordSpendLocked(userID, tx)
	return tx
}

// recordSpendLocked keeps the server-side spending counters the
// resetBudgetSpending endpoint zeroes out.
func (s *state) recordSpendLocked(userID string, tx *domain.Transaction) {
	if tx.Type != domain.TransactionTypeExpense || tx.Category == nil {
		return
	}
	for _, b := range s.budgets[userID] {
		if b.Category != nil && b.Category.ID == tx.Category.ID {
			s.spent[b.ID] = s.spent[b.ID].Add(tx.Amount)
		}
	}
}

func (s *state) updateTransaction(userID string, tx *domain.Transaction) (*domain.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.transactions[userID] {
		if t.ID == tx.ID {
			s.transactions[userID][i] = tx
			return tx, true
		}
	}
	return nil, false
}

func (s *state) deleteTransaction(userID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.transactions[userID] {
		if t.ID == id {
			s.transactions[userID] = append(s.transactions[userID][:i], s.transactions[userID][i+1:]...)
			return true
		}
	}
	return false
}

func (s *state) resetTransactions(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[userID] = nil
}
