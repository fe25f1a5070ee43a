package seatmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHoldTTLSeconds(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
		want int64
	}{
		{"full session", 300 * time.Second, 300},
		{"mid session", 90 * time.Second, 90},
		{"fractional seconds truncate", 1500 * time.Millisecond, 1},
		{"sub-second remainder rounds up", 500 * time.Millisecond, 1},
		{"zero rounds up", 0, 1},
		{"negative rounds up", -time.Second, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, holdTTLSeconds(tt.ttl))
		})
	}
}

func TestLabelFromHoldKey(t *testing.T) {
	assert.Equal(t, "A7", labelFromHoldKey(holdKey("st-1", "A7"), "st-1"))
	// Keys from another showtime pass through unchanged.
	assert.Equal(t, holdKey("st-2", "A7"), labelFromHoldKey(holdKey("st-2", "A7"), "st-1"))
}
