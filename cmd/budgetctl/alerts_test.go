package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/ledgerline/ledgerline-client/internal/alert"
)

func TestRenderAlerts_PrintsPendingNotifications(t *testing.T) {
	center := alert.NewCenter(alert.WithTTL(time.Minute))
	center.Push(alert.SeveritySuccess, "Category added.")
	center.Push(alert.SeverityError, "Failed to reset budget spending.")

	var buf bytes.Buffer
	renderAlerts(&buf, center.Active())

	want := "[success] Category added.\n[error] Failed to reset budget spending.\n"
	if got := buf.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRenderAlerts_NothingPendingWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	renderAlerts(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}
