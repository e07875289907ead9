// Package store implements the in-memory mirrors of the server-backed
// collections: categories, budgets and transactions. Each store fetches
// through its API interface, mutates remote-first, and announces successful
// mutations on the event bus.
package store

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ledgerline/ledgerline-client/internal/domain"
	"github.com/ledgerline/ledgerline-client/internal/event"
)

// CategoryStore mirrors the user's expense category list.
// It is safe for concurrent use.
type CategoryStore struct {
	mu         sync.Mutex
	categories []*domain.Category

	api     domain.CategoryAPI
	session domain.SessionReader
	bus     *event.Bus
	logger  zerolog.Logger

	unsubscribe []func()
}

// NewCategoryStore creates a CategoryStore and declares its refresh
// triggers: session changes (login/logout) and budget mutations, since
// creating a budget may implicitly create a category.
func NewCategoryStore(api domain.CategoryAPI, session domain.SessionReader, bus *event.Bus, logger zerolog.Logger) *CategoryStore {
	s := &CategoryStore{
		api:     api,
		session: session,
		bus:     bus,
		logger:  logger,
	}
	refetch := func(ev event.Event) {
		if err := s.Fetch(context.Background()); err != nil {
			s.logger.Warn().Err(err).Str("trigger", string(ev.Topic)).Msg("Category refetch failed")
		}
	}
	s.unsubscribe = append(s.unsubscribe,
		bus.Subscribe(event.TopicSessionChanged, refetch),
		bus.Subscribe(event.TopicBudgetsChanged, refetch),
	)
	return s
}

// Close removes the store's bus subscriptions.
func (s *CategoryStore) Close() {
	for _, u := range s.unsubscribe {
		u()
	}
}

// Fetch loads the full category list for the current token. Without a
// session it resets to an empty list and performs no network call.
func (s *CategoryStore) Fetch(ctx context.Context) error {
	token := s.session.Token()
	if token == "" {
		s.mu.Lock()
		s.categories = nil
		s.mu.Unlock()
		return nil
	}

	categories, err := s.api.List(ctx, token)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Fetching categories failed")
		return err
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	return nil
}

// Add posts a new category and appends it locally on success.
func (s *CategoryStore) Add(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	token := s.session.Token()
	if token == "" {
		s.logger.Warn().Msg("Token not available, cannot add category")
		return nil, domain.ErrNotAuthenticated
	}

	category, err := s.api.Create(ctx, token, name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.categories = append(s.categories, category)
	s.mu.Unlock()

	s.bus.Publish(event.Event{Topic: event.TopicCategoriesChanged, Reason: "add"})
	return category, nil
}

// Delete removes the category remotely, then locally. A failed backend call
// leaves the local list unchanged. Removing an id the backend no longer
// knows surfaces the backend's not-found error without touching local
// state.
func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrMissingID
	}

	token := s.session.Token()
	if token == "" {
		s.logger.Warn().Msg("Token not available, cannot delete category")
		return domain.ErrNotAuthenticated
	}

	if err := s.api.Delete(ctx, token, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	s.mu.Unlock()

	s.bus.Publish(event.Event{Topic: event.TopicCategoriesChanged, Reason: "delete"})
	return nil
}

// Categories returns a copy of the current list.
func (s *CategoryStore) Categories() []*domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Category, len(s.categories))
	copy(out, s.categories)
	return out
}
