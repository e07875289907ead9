// Package event provides the notification bus that connects the stores.
// Cross-store dependencies (budget mutations invalidating categories,
// transaction mutations invalidating budget spend) are declared as
// subscriptions instead of being buried in the mutating code paths.
package event

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Topic identifies a class of state change.
type Topic string

const (
	// TopicSessionChanged fires on login, logout and externally mirrored
	// session changes.
	TopicSessionChanged Topic = "session.changed"
	// TopicCategoriesChanged fires after a category mutation succeeds.
	TopicCategoriesChanged Topic = "categories.changed"
	// TopicBudgetsChanged fires after a budget mutation succeeds. Budget
	// creation may implicitly create a category, so the category store
	// listens here too.
	TopicBudgetsChanged Topic = "budgets.changed"
	// TopicTransactionsChanged fires after a transaction mutation succeeds
	// and drives budget spend recalculation.
	TopicTransactionsChanged Topic = "transactions.changed"
)

// Event is a published notification.
type Event struct {
	Topic  Topic
	Reason string
}

// Handler receives published events. Handlers run synchronously on the
// publisher's goroutine and must not publish to the same bus while holding
// locks that the publisher also holds.
type Handler func(Event)

type subscription struct {
	id      int
	handler Handler
}

// Bus is a topic-keyed fanout of state-change notifications.
// It is safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Topic][]subscription
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscription)}
}

// Subscribe registers a handler for a topic and returns a function that
// removes the subscription.
func (b *Bus) Subscribe(topic Topic, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[topic]
		for i, s := range subs {
			if s.id == id {
				b.subs[topic] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to every handler subscribed to its topic.
// Handlers are invoked outside the bus lock.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	subs := b.subs[ev.Topic]
	handlers := make([]Handler, 0, len(subs))
	for _, s := range subs {
		handlers = append(handlers, s.handler)
	}
	b.mu.RUnlock()

	log.Debug().
		Str("topic", string(ev.Topic)).
		Str("reason", ev.Reason).
		Int("subscriber_count", len(handlers)).
		Msg("Publishing event")

	for _, h := range handlers {
		h(ev)
	}
}

// SubscriberCount returns the number of handlers registered for a topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}
