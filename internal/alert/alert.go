// Package alert is the transient notification center: short-lived,
// severity-tagged messages that expire on their own after a few seconds.
package alert

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Severity distinguishes notification classes.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	// SeveritySession marks session lifecycle messages (logout, expiry).
	SeveritySession Severity = "session"
)

// DefaultTTL matches the web client's three second auto-dismiss.
const DefaultTTL = 3 * time.Second

// Alert is one transient notification.
type Alert struct {
	ID       string
	Severity Severity
	Message  string
	At       time.Time
}

// Center collects alerts and expires them after a fixed TTL.
// It is safe for concurrent use.
type Center struct {
	mu       sync.Mutex
	alerts   []Alert
	ttl      time.Duration
	onExpire []func(Alert)
	logger   zerolog.Logger
}

// Option customizes a Center.
type Option func(*Center)

// WithTTL overrides the auto-dismiss duration.
func WithTTL(ttl time.Duration) Option {
	return func(c *Center) { c.ttl = ttl }
}

// WithLogger attaches a logger to the center.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Center) { c.logger = logger }
}

// NewCenter creates an empty Center.
func NewCenter(opts ...Option) *Center {
	c := &Center{ttl: DefaultTTL, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Push adds a notification and schedules its expiry.
func (c *Center) Push(severity Severity, message string) Alert {
	a := Alert{
		ID:       uuid.NewString(),
		Severity: severity,
		Message:  message,
		At:       time.Now(),
	}

	c.mu.Lock()
	c.alerts = append(c.alerts, a)
	c.mu.Unlock()

	c.logger.Debug().Str("severity", string(severity)).Str("message", message).Msg("Alert pushed")
	time.AfterFunc(c.ttl, func() { c.expire(a.ID) })
	return a
}

// Dismiss removes a notification before its TTL elapses.
func (c *Center) Dismiss(id string) {
	c.expire(id)
}

// Active returns the notifications that have not expired yet.
func (c *Center) Active() []Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Alert, len(c.alerts))
	copy(out, c.alerts)
	return out
}

// OnExpire registers a callback invoked when a notification goes away.
func (c *Center) OnExpire(fn func(Alert)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onExpire = append(c.onExpire, fn)
}

func (c *Center) expire(id string) {
	c.mu.Lock()
	var expired *Alert
	kept := c.alerts[:0]
	for _, a := range c.alerts {
		if a.ID == id && expired == nil {
			expiredCopy := a
			expired = &expiredCopy
			continue
		}
		kept = append(kept, a)
	}
	c.alerts = kept
	callbacks := make([]func(Alert), len(c.onExpire))
	copy(callbacks, c.onExpire)
	c.mu.Unlock()

	if expired == nil {
		return
	}
	for _, fn := range callbacks {
		fn(*expired)
	}
}
