package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ledgerline/ledgerline-client/internal/domain"
	"github.com/ledgerline/ledgerline-client/internal/event"
)

// BudgetStore mirrors the user's budget definitions. Loading and error
// state reflect the most recent operation. Safe for concurrent use.
type BudgetStore struct {
	mu      sync.Mutex
	budgets []*domain.Budget
	loading bool
	lastErr error

	api     domain.BudgetAPI
	session domain.SessionReader
	bus     *event.Bus
	logger  zerolog.Logger

	unsubscribe []func()
}

// NewBudgetStore creates a BudgetStore that refetches on session changes
// and on transaction mutations (spend figures derive from transactions).
func NewBudgetStore(api domain.BudgetAPI, session domain.SessionReader, bus *event.Bus, logger zerolog.Logger) *BudgetStore {
	s := &BudgetStore{
		api:     api,
		session: session,
		bus:     bus,
		logger:  logger,
	}
	refetch := func(ev event.Event) {
		if err := s.Fetch(context.Background()); err != nil {
			s.logger.Warn().Err(err).Str("trigger", string(ev.Topic)).Msg("Budget refetch failed")
		}
	}
	s.unsubscribe = append(s.unsubscribe,
		bus.Subscribe(event.TopicSessionChanged, refetch),
		bus.Subscribe(event.TopicTransactionsChanged, refetch),
	)
	return s
}

// Close removes the store's bus subscriptions.
func (s *BudgetStore) Close() {
	for _, u := range s.unsubscribe {
		u()
	}
}

func (s *BudgetStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()
}

func (s *BudgetStore) finish(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = err
	s.mu.Unlock()
}

func (s *BudgetStore) requireSession() (token, userID string, err error) {
	token = s.session.Token()
	userID = s.session.UserID()
	if token == "" || userID == "" {
		return "", "", domain.ErrNotAuthenticated
	}
	return token, userID, nil
}

// Fetch loads all budgets for the current user, or clears the list when
// unauthenticated.
func (s *BudgetStore) Fetch(ctx context.Context) error {
	token, userID, err := s.requireSession()
	if err != nil {
		s.mu.Lock()
		s.budgets = nil
		s.mu.Unlock()
		return nil
	}

	s.begin()
	budgets, err := s.api.ListForUser(ctx, token, userID)
	s.finish(err)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Fetching budgets failed")
		return err
	}

	s.mu.Lock()
	s.budgets = budgets
	s.mu.Unlock()
	return nil
}

// Add posts a new budget and appends the server-returned entity, which
// carries the assigned id and the resolved (possibly newly created)
// category. The category store picks the change up via the bus.
func (s *BudgetStore) Add(ctx context.Context, req domain.BudgetCreate) (*domain.Budget, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	token, userID, err := s.requireSession()
	if err != nil {
		s.logger.Warn().Msg("Not authenticated, cannot add budget")
		return nil, err
	}

	s.begin()
	budget, err := s.api.Create(ctx, token, userID, req)
	s.finish(err)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Adding budget failed")
		return nil, err
	}

	s.mu.Lock()
	s.budgets = append(s.budgets, budget)
	s.mu.Unlock()

	s.bus.Publish(event.Event{Topic: event.TopicBudgetsChanged, Reason: "add"})
	return budget, nil
}

// Edit puts the update and replaces the matching entry in place by id.
// Failure leaves local state untouched.
func (s *BudgetStore) Edit(ctx context.Context, id string, req domain.BudgetUpdate) (*domain.Budget, error) {
	if id == "" {
		return nil, domain.ErrMissingID
	}
	token, userID, err := s.requireSession()
	if err != nil {
		s.logger.Warn().Msg("Not authenticated, cannot edit budget")
		return nil, err
	}

	s.begin()
	updated, err := s.api.Update(ctx, token, id, userID, req)
	s.finish(err)
	if err != nil {
		s.logger.Warn().Err(err).Str("budget_id", id).Msg("Editing budget failed")
		return nil, err
	}

	s.mu.Lock()
	for i, b := range s.budgets {
		if b.ID == id {
			s.budgets[i] = updated
			break
		}
	}
	s.mu.Unlock()

	s.bus.Publish(event.Event{Topic: event.TopicBudgetsChanged, Reason: "edit"})
	return updated, nil
}

// Delete removes the budget remotely, then locally by id.
func (s *BudgetStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrMissingID
	}
	token, userID, err := s.requireSession()
	if err != nil {
		s.logger.Warn().Msg("Not authenticated, cannot delete budget")
		return err
	}

	s.begin()
	err = s.api.Delete(ctx, token, id, userID)
	s.finish(err)
	if err != nil {
		s.logger.Warn().Err(err).Str("budget_id", id).Msg("Deleting budget failed")
		return err
	}

	s.mu.Lock()
	kept := s.budgets[:0]
	for _, b := range s.budgets {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.budgets = kept
	s.mu.Unlock()

	s.bus.Publish(event.Event{Topic: event.TopicBudgetsChanged, Reason: "delete"})
	return nil
}

// Budgets returns a copy of the current list.
func (s *BudgetStore) Budgets() []*domain.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Budget, len(s.budgets))
	copy(out, s.budgets)
	return out
}

// Loading reports whether an operation is in flight.
func (s *BudgetStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the error of the most recent operation, or nil.
func (s *BudgetStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
