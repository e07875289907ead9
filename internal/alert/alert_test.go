package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter_PushAndAutoExpire(t *testing.T) {
	center := NewCenter(WithTTL(30 * time.Millisecond))

	center.Push(SeveritySuccess, "Transaction added successfully!")
	require.Len(t, center.Active(), 1)

	assert.Eventually(t, func() bool {
		return len(center.Active()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestCenter_DismissRemovesEarly(t *testing.T) {
	center := NewCenter(WithTTL(time.Minute))

	a := center.Push(SeverityError, "Failed to reset budget spending.")
	center.Dismiss(a.ID)
	assert.Empty(t, center.Active())
}

func TestCenter_OnExpireCallback(t *testing.T) {
	center := NewCenter(WithTTL(time.Minute))

	var expired []Alert
	center.OnExpire(func(a Alert) { expired = append(expired, a) })

	a := center.Push(SeveritySession, "You have been logged out due to inactivity.")
	center.Dismiss(a.ID)

	require.Len(t, expired, 1)
	assert.Equal(t, SeveritySession, expired[0].Severity)
}

func TestCenter_SeveritiesAreKept(t *testing.T) {
	center := NewCenter(WithTTL(time.Minute))

	center.Push(SeveritySuccess, "ok")
	center.Push(SeverityInfo, "note")

	active := center.Active()
	require.Len(t, active, 2)
	assert.Equal(t, SeveritySuccess, active[0].Severity)
	assert.Equal(t, SeverityInfo, active[1].Severity)
}
