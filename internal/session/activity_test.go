package session

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestActivityMonitor_FiresOnceAfterWindow(t *testing.T) {
	var fired atomic.Int32
	m := NewActivityMonitor(30*time.Millisecond, func() { fired.Add(1) })

	m.Start()
	time.Sleep(120 * time.Millisecond)

	if got := fired.Load(); got != 1 {
		t.Fatalf("Expected exactly 1 expiry, got %d", got)
	}
	if m.Running() {
		t.Error("Expected monitor stopped after expiry")
	}
}

func TestActivityMonitor_TouchResetsDeadline(t *testing.T) {
	var fired atomic.Int32
	m := NewActivityMonitor(60*time.Millisecond, func() { fired.Add(1) })

	m.Start()
	for i := 0; i < 5; i++ {
		time.Sleep(30 * time.Millisecond)
		m.Touch(ActivityPointerMove)
	}
	if got := fired.Load(); got != 0 {
		t.Fatalf("Expected no expiry while active, got %d", got)
	}

	time.Sleep(150 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Fatalf("Expected expiry after activity stopped, got %d", got)
	}
}

func TestActivityMonitor_StopPreventsExpiry(t *testing.T) {
	var fired atomic.Int32
	m := NewActivityMonitor(30*time.Millisecond, func() { fired.Add(1) })

	m.Start()
	m.Stop()
	time.Sleep(100 * time.Millisecond)

	if got := fired.Load(); got != 0 {
		t.Fatalf("Expected no expiry after Stop, got %d", got)
	}
}

func TestActivityMonitor_TouchWhileStoppedIsIgnored(t *testing.T) {
	m := NewActivityMonitor(30*time.Millisecond, nil)
	m.Touch(ActivityScroll)
	if m.Running() {
		t.Error("Expected monitor to stay stopped")
	}
}
