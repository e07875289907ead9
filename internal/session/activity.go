package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ActivityKind is a class of user input that counts as activity.
type ActivityKind string

const (
	ActivityPointerMove ActivityKind = "pointer-move"
	ActivityPointerDown ActivityKind = "pointer-down"
	ActivityKeyPress    ActivityKind = "key-press"
	ActivityScroll      ActivityKind = "scroll"
	ActivityTouch       ActivityKind = "touch"
)

// ActivityMonitor tracks an inactivity deadline for an authenticated
// session. Any Touch pushes the deadline out by the configured window; if
// the deadline elapses while the monitor is running, onExpire fires exactly
// once and the monitor stops until the next Start.
type ActivityMonitor struct {
	mu       sync.Mutex
	window   time.Duration
	timer    *time.Timer
	running  bool
	onExpire func()
}

// NewActivityMonitor creates a stopped monitor.
func NewActivityMonitor(window time.Duration, onExpire func()) *ActivityMonitor {
	return &ActivityMonitor{window: window, onExpire: onExpire}
}

// Start arms the inactivity deadline. Starting a running monitor resets it.
func (m *ActivityMonitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
	m.running = true
	m.timer = time.AfterFunc(m.window, m.expire)
}

// Stop disarms the deadline without firing.
func (m *ActivityMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *ActivityMonitor) stopLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.running = false
}

// Touch records qualifying input and resets the deadline. Touches on a
// stopped monitor are ignored.
func (m *ActivityMonitor) Touch(kind ActivityKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	log.Trace().Str("kind", string(kind)).Msg("Activity recorded")
	m.timer.Stop()
	m.timer = time.AfterFunc(m.window, m.expire)
}

// Running reports whether the deadline is armed.
func (m *ActivityMonitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *ActivityMonitor) expire() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.stopLocked()
	m.mu.Unlock()

	if m.onExpire != nil {
		m.onExpire()
	}
}
