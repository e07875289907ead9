// Package session implements the session store: the authenticated identity
// and bearer token for the current user, persisted to a shared slot file
// and expired after a fixed window of inactivity.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerline/ledgerline-client/internal/domain"
	"github.com/ledgerline/ledgerline-client/internal/event"
)

// LogoutReason records why a session ended, for user-facing messaging.
type LogoutReason string

const (
	LogoutNone       LogoutReason = ""
	LogoutExplicit   LogoutReason = "explicit"
	LogoutInactivity LogoutReason = "inactivity"
	// LogoutExternal marks a logout mirrored from another process writing
	// the shared slot.
	LogoutExternal LogoutReason = "external"
)

// DefaultInactivityWindow matches the web client's one hour idle timeout.
const DefaultInactivityWindow = time.Hour

// Store holds the current session. Token and user are set and cleared
// together; every change is written through to the slot file and published
// on the bus. Safe for concurrent use.
type Store struct {
	mu           sync.Mutex
	token        string
	user         *domain.User
	logoutReason LogoutReason

	slot    *Slot
	auth    domain.AuthAPI
	bus     *event.Bus
	monitor *ActivityMonitor
	logger  zerolog.Logger

	watchStop chan struct{}
	watchOnce sync.Once
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithInactivityWindow overrides the idle timeout.
func WithInactivityWindow(window time.Duration) StoreOption {
	return func(s *Store) {
		s.monitor = NewActivityMonitor(window, s.expireInactive)
	}
}

// WithLogger attaches a logger to the store.
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a Store seeded from the slot file. An authenticated
// session found in the slot arms the inactivity monitor.
func NewStore(slot *Slot, auth domain.AuthAPI, bus *event.Bus, opts ...StoreOption) (*Store, error) {
	s := &Store{
		slot:      slot,
		auth:      auth,
		bus:       bus,
		logger:    zerolog.Nop(),
		watchStop: make(chan struct{}),
	}
	s.monitor = NewActivityMonitor(DefaultInactivityWindow, s.expireInactive)
	for _, opt := range opts {
		opt(s)
	}

	state, err := slot.Load()
	if err != nil {
		return nil, err
	}
	s.token = state.Token
	s.user = state.User
	if s.token != "" {
		s.monitor.Start()
	}
	return s, nil
}

// Login stores the session, persists it, resets the inactivity deadline and
// clears any pending logout reason. No validation beyond presence.
func (s *Store) Login(sess *domain.Session) error {
	if sess == nil || sess.Token == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	s.token = sess.Token
	s.user = sess.User
	s.logoutReason = LogoutNone
	err := s.slot.Save(SlotState{Token: s.token, User: s.user})
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.monitor.Start()
	s.logger.Info().Str("user_id", sess.UserID()).Msg("Logged in")
	s.bus.Publish(event.Event{Topic: event.TopicSessionChanged, Reason: "login"})
	return nil
}

// Logout clears the session from memory and persistent storage and records
// the reason.
func (s *Store) Logout(reason LogoutReason) error {
	s.mu.Lock()
	wasAuthenticated := s.token != ""
	s.token = ""
	s.user = nil
	s.logoutReason = reason
	err := s.slot.Clear()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.monitor.Stop()
	if wasAuthenticated {
		s.logger.Info().Str("reason", string(reason)).Msg("Logged out")
		s.bus.Publish(event.Event{Topic: event.TopicSessionChanged, Reason: string(reason)})
	}
	return nil
}

// Restore completes a session loaded from the slot: a token without a
// cached user triggers a profile fetch. An expired or invalid token clears
// the session silently.
func (s *Store) Restore(ctx context.Context) error {
	s.mu.Lock()
	token := s.token
	hasUser := s.user != nil
	s.mu.Unlock()

	if token == "" || hasUser {
		return nil
	}

	user, err := s.auth.Me(ctx, token)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Session restore failed, clearing session")
		return s.Logout(LogoutNone)
	}

	s.mu.Lock()
	if s.token != token {
		// Session changed while the profile fetch was in flight.
		s.mu.Unlock()
		return nil
	}
	s.user = user
	err = s.slot.Save(SlotState{Token: token, User: user})
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.bus.Publish(event.Event{Topic: event.TopicSessionChanged, Reason: "restore"})
	return nil
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the current user profile, or nil.
func (s *Store) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// UserID returns the current user's id, or "".
func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ""
	}
	return s.user.ID
}

// IsAuthenticated reports whether a session is active.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// LastLogoutReason returns why the previous session ended.
func (s *Store) LastLogoutReason() LogoutReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logoutReason
}

// Touch records qualifying user input and pushes the inactivity deadline.
func (s *Store) Touch(kind ActivityKind) {
	s.monitor.Touch(kind)
}

func (s *Store) expireInactive() {
	s.logger.Info().Msg("Session expired due to inactivity")
	if err := s.Logout(LogoutInactivity); err != nil {
		s.logger.Error().Err(err).Msg("Inactivity logout failed")
	}
}

// Watch polls the slot file and mirrors external changes into memory, so a
// logout in one process logs out the others. Call Close to stop.
func (s *Store) Watch(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.syncFromSlot()
			case <-s.watchStop:
				return
			}
		}
	}()
}

// Close stops the slot watcher and the inactivity monitor.
func (s *Store) Close() {
	s.watchOnce.Do(func() { close(s.watchStop) })
	s.monitor.Stop()
}

func (s *Store) syncFromSlot() {
	state, err := s.slot.Load()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Session slot read failed")
		return
	}

	s.mu.Lock()
	if state.Token == s.token {
		s.mu.Unlock()
		return
	}

	external := state.Token == ""
	s.token = state.Token
	s.user = state.User
	if external {
		s.logoutReason = LogoutExternal
	} else {
		s.logoutReason = LogoutNone
	}
	s.mu.Unlock()

	if external {
		s.monitor.Stop()
		s.logger.Info().Msg("Session cleared externally")
		s.bus.Publish(event.Event{Topic: event.TopicSessionChanged, Reason: string(LogoutExternal)})
		return
	}

	s.monitor.Start()
	s.logger.Info().Msg("Session updated externally")
	s.bus.Publish(event.Event{Topic: event.TopicSessionChanged, Reason: "external-login"})
}
