package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ledgerline/ledgerline-client/internal/domain"
	"github.com/ledgerline/ledgerline-client/internal/event"
)

// TransactionStore mirrors the user's income and expense records, plus a
// lightweight category list for display. At most one transaction is marked
// as being edited at a time. Safe for concurrent use.
type TransactionStore struct {
	mu           sync.Mutex
	transactions []*domain.Transaction
	categories   []*domain.Category
	editing      *domain.Transaction

	api         domain.TransactionAPI
	categoryAPI domain.CategoryAPI
	spendReset  domain.SpendResetter
	session     domain.SessionReader
	bus         *event.Bus
	logger      zerolog.Logger

	unsubscribe []func()
}

// NewTransactionStore creates a TransactionStore that refetches on session
// changes.
func NewTransactionStore(api domain.TransactionAPI, categoryAPI domain.CategoryAPI, spendReset domain.SpendResetter, session domain.SessionReader, bus *event.Bus, logger zerolog.Logger) *TransactionStore {
	s := &TransactionStore{
		api:         api,
		categoryAPI: categoryAPI,
		spendReset:  spendReset,
		session:     session,
		bus:         bus,
		logger:      logger,
	}
	s.unsubscribe = append(s.unsubscribe,
		bus.Subscribe(event.TopicSessionChanged, func(ev event.Event) {
			if err := s.Fetch(context.Background()); err != nil {
				s.logger.Warn().Err(err).Str("trigger", string(ev.Topic)).Msg("Transaction refetch failed")
			}
		}),
	)
	return s
}

// Close removes the store's bus subscriptions.
func (s *TransactionStore) Close() {
	for _, u := range s.unsubscribe {
		u()
	}
}

func (s *TransactionStore) requireSession() (token, userID string, err error) {
	token = s.session.Token()
	userID = s.session.UserID()
	if token == "" || userID == "" {
		return "", "", domain.ErrNotAuthenticated
	}
	return token, userID, nil
}

// Fetch loads the transaction list and the display category list for the
// current user. Without a session both reset to empty.
func (s *TransactionStore) Fetch(ctx context.Context) error {
	token, userID, err := s.requireSession()
	if err != nil {
		s.mu.Lock()
		s.transactions = nil
		s.categories = nil
		s.editing = nil
		s.mu.Unlock()
		return nil
	}

	transactions, err := s.api.ListForUser(ctx, token, userID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Fetching transactions failed")
		return err
	}

	categories, err := s.categoryAPI.List(ctx, token)
	if err != nil {
		// The display list is auxiliary; keep the transactions.
		s.logger.Warn().Err(err).Msg("Fetching display categories failed")
		categories = nil
	}

	s.mu.Lock()
	s.transactions = transactions
	if categories != nil {
		s.categories = categories
	}
	s.mu.Unlock()
	return nil
}

// Add posts the transaction and appends the server-returned entity on
// success.
func (s *TransactionStore) Add(ctx context.Context, req domain.TransactionCreate) (*domain.Transaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	token, _, err := s.requireSession()
	if err != nil {
		s.logger.Warn().Msg("Not authenticated, cannot add transaction")
		return nil, err
	}

	tx, err := s.api.Create(ctx, token, req)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Adding transaction failed")
		return nil, err
	}

	s.mu.Lock()
	s.transactions = append(s.transactions, tx)
	s.mu.Unlock()

	s.bus.Publish(event.Event{Topic: event.TopicTransactionsChanged, Reason: "add"})
	return tx, nil
}

// Update puts the transaction and replaces the matching entry by id. The
// editing marker is cleared on success.
func (s *TransactionStore) Update(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	if tx == nil || tx.ID == "" {
		return nil, domain.ErrMissingID
	}
	token, _, err := s.requireSession()
	if err != nil {
		s.logger.Warn().Msg("Not authenticated, cannot update transaction")
		return nil, err
	}

	updated, err := s.api.Update(ctx, token, tx)
	if err != nil {
		s.logger.Warn().Err(err).Str("transaction_id", tx.ID).Msg("Updating transaction failed")
		return nil, err
	}

	s.mu.Lock()
	for i, t := range s.transactions {
		if t.ID == updated.ID {
			s.transactions[i] = updated
			break
		}
	}
	s.editing = nil
	s.mu.Unlock()

	s.bus.Publish(event.Event{Topic: event.TopicTransactionsChanged, Reason: "update"})
	return updated, nil
}

// Delete removes the transaction remotely, then locally by id.
func (s *TransactionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrMissingID
	}
	token, _, err := s.requireSession()
	if err != nil {
		s.logger.Warn().Msg("Not authenticated, cannot delete transaction")
		return err
	}

	if err := s.api.Delete(ctx, token, id); err != nil {
		s.logger.Warn().Err(err).Str("transaction_id", id).Msg("Deleting transaction failed")
		return err
	}

	s.mu.Lock()
	kept := s.transactions[:0]
	for _, t := range s.transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.transactions = kept
	s.mu.Unlock()

	s.bus.Publish(event.Event{Topic: event.TopicTransactionsChanged, Reason: "delete"})
	return nil
}

// StartEdit marks a transaction as the one being edited.
func (s *TransactionStore) StartEdit(tx *domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = tx
}

// CancelEdit clears the editing marker.
func (s *TransactionStore) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = nil
}

// Editing returns the transaction currently being edited, or nil.
func (s *TransactionStore) Editing() *domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing
}

// ResetAll deletes every transaction of the user remotely, clears the local
// list, then asks the backend to zero out recorded budget spending. When
// only the companion call fails the local clear stands and the returned
// error wraps domain.ErrSpendResetFailed; callers report it and must not
// treat the reset as failed.
func (s *TransactionStore) ResetAll(ctx context.Context) error {
	token, userID, err := s.requireSession()
	if err != nil {
		s.logger.Warn().Msg("Not authenticated, cannot reset transactions")
		return err
	}

	if err := s.api.ResetForUser(ctx, token, userID); err != nil {
		s.logger.Warn().Err(err).Msg("Resetting transactions failed")
		return err
	}

	s.mu.Lock()
	s.transactions = nil
	s.editing = nil
	s.mu.Unlock()

	s.bus.Publish(event.Event{Topic: event.TopicTransactionsChanged, Reason: "reset"})

	if err := s.spendReset.ResetSpending(ctx, token, userID); err != nil {
		// Known inconsistency window: stale spend figures may linger
		// server-side until the next fetch.
		s.logger.Warn().Err(err).Msg("Budget spending reset failed after transaction reset")
		return fmt.Errorf("%w: %w", domain.ErrSpendResetFailed, err)
	}
	return nil
}

// Transactions returns a copy of the current list.
func (s *TransactionStore) Transactions() []*domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Categories returns a copy of the display category list.
func (s *TransactionStore) Categories() []*domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Category, len(s.categories))
	copy(out, s.categories)
	return out
}
