package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimer_RemainingFromCreationTimestamp(t *testing.T) {
	// Created 90 seconds ago with a 300 second timeout: the remaining time
	// is 210 seconds no matter when it is computed within the same second.
	now := time.Now()
	timer := NewTimer(now.Add(-90*time.Second), 300*time.Second)

	assert.Equal(t, int64(210), timer.RemainingSeconds(now))
	assert.False(t, timer.Expired(now))
}

func TestTimer_Boundaries(t *testing.T) {
	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	timer := NewTimer(createdAt, 300*time.Second)

	tests := []struct {
		name          string
		now           time.Time
		wantRemaining int64
		wantExpired   bool
	}{
		{"at creation", createdAt, 300, false},
		{"one second left", createdAt.Add(299 * time.Second), 1, false},
		{"exactly at deadline", createdAt.Add(300 * time.Second), 0, true},
		{"past deadline clamps to zero", createdAt.Add(400 * time.Second), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantRemaining, timer.RemainingSeconds(tt.now))
			assert.Equal(t, tt.wantExpired, timer.Expired(tt.now))
		})
	}
}

func TestTimer_RecomputationIsStable(t *testing.T) {
	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	timer := NewTimer(createdAt, 300*time.Second)
	now := createdAt.Add(90 * time.Second)

	// Repeated reads at the same instant always agree; the timer carries
	// no state that could drift.
	for i := 0; i < 5; i++ {
		assert.Equal(t, int64(210), timer.RemainingSeconds(now))
	}
}
