package seatmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinebook/internal/theaters"
)

// testSeats builds a single-row auditorium A1..A10 with the given class,
// marking the listed labels sold.
func testSeats(class theaters.SeatClass, count int) []theaters.Seat {
	seats := make([]theaters.Seat, 0, count)
	for col := 1; col <= count; col++ {
		seats = append(seats, theaters.Seat{
			Label:    theaters.SeatLabel("A", col),
			RowLabel: "A",
			Column:   col,
			Class:    class,
		})
	}
	return seats
}

func soldSet(labels ...string) map[string]bool {
	sold := make(map[string]bool)
	for _, l := range labels {
		sold[l] = true
	}
	return sold
}

func TestTryToggle_SelectAndDeselect(t *testing.T) {
	sm := NewSeatMap("st-1", testSeats(theaters.SeatStandard, 10), nil, nil)
	v := &Validator{}

	sel, err := v.TryToggle(NewSelection(), "A5", sm)
	require.NoError(t, err)
	assert.True(t, sel.Contains("A5"))

	// Toggling the same seat again removes it.
	sel, err = v.TryToggle(sel, "A5", sm)
	require.NoError(t, err)
	assert.False(t, sel.Contains("A5"))
	assert.Empty(t, sel.Labels())
}

func TestTryToggle_RemovalAlwaysSucceeds(t *testing.T) {
	// Removing the middle of a block leaves A4 stranded between A3 and A5,
	// but removal is never rejected.
	sm := NewSeatMap("st-1", testSeats(theaters.SeatStandard, 10), nil, nil)
	v := &Validator{}

	sel := NewSelection("A3", "A4", "A5")
	next, err := v.TryToggle(sel, "A4", sm)
	require.NoError(t, err)
	assert.Equal(t, []string{"A3", "A5"}, next.Labels())
}

func TestTryToggle_SeatUnavailable(t *testing.T) {
	tests := []struct {
		name string
		sold map[string]bool
		held map[string]bool
	}{
		{name: "sold seat", sold: soldSet("A5")},
		{name: "held seat", held: soldSet("A5")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewSeatMap("st-1", testSeats(theaters.SeatStandard, 10), tt.sold, tt.held)
			v := &Validator{}

			sel, err := v.TryToggle(NewSelection(), "A5", sm)

			var rejection *Rejection
			require.True(t, errors.As(err, &rejection))
			assert.Equal(t, RejectSeatUnavailable, rejection.Code)
			assert.Equal(t, "A5", rejection.SeatLabel)
			assert.Empty(t, sel.Labels())
		})
	}
}

func TestTryToggle_MixedSeatClass(t *testing.T) {
	seats := testSeats(theaters.SeatStandard, 5)
	for col := 1; col <= 5; col++ {
		seats = append(seats, theaters.Seat{
			Label:    theaters.SeatLabel("B", col),
			RowLabel: "B",
			Column:   col,
			Class:    theaters.SeatPremium,
		})
	}
	sm := NewSeatMap("st-1", seats, nil, nil)
	v := &Validator{}

	sel, err := v.TryToggle(NewSelection(), "A1", sm)
	require.NoError(t, err)

	// First seat always succeeds; a different class afterwards does not.
	_, err = v.TryToggle(sel, "B1", sm)
	var rejection *Rejection
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, RejectMixedSeatClass, rejection.Code)
}

func TestTryToggle_OrphanSeatGap(t *testing.T) {
	// Row A1-A10 with A1 and A10 sold. Selecting A2 then A9 must be
	// rejected while any seat between them is still available.
	sm := NewSeatMap("st-1", testSeats(theaters.SeatStandard, 10), soldSet("A1", "A10"), nil)
	v := &Validator{}

	sel, err := v.TryToggle(NewSelection(), "A2", sm)
	require.NoError(t, err)

	next, err := v.TryToggle(sel, "A9", sm)
	var rejection *Rejection
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, RejectOrphanSeatGap, rejection.Code)
	// Prior selection is retained on rejection.
	assert.Equal(t, []string{"A2"}, next.Labels())
}

func TestTryToggle_GapAllowedWhenBetweenSeatsUnavailable(t *testing.T) {
	// Same shape, but everything between A2 and A9 is already sold.
	sm := NewSeatMap("st-1", testSeats(theaters.SeatStandard, 10),
		soldSet("A1", "A3", "A4", "A5", "A6", "A7", "A8", "A10"), nil)
	v := &Validator{}

	sel, err := v.TryToggle(NewSelection(), "A2", sm)
	require.NoError(t, err)

	sel, err = v.TryToggle(sel, "A9", sm)
	require.NoError(t, err)
	assert.Equal(t, []string{"A2", "A9"}, sel.Labels())
}

func TestTryToggle_AdjacentSeatsNeverOrphan(t *testing.T) {
	sm := NewSeatMap("st-1", testSeats(theaters.SeatStandard, 10), nil, nil)
	v := &Validator{}

	sel := NewSelection()
	var err error
	for _, label := range []string{"A4", "A5", "A6"} {
		sel, err = v.TryToggle(sel, label, sm)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"A4", "A5", "A6"}, sel.Labels())
}

func TestTryToggle_EdgeOfRowOrphanPermitted(t *testing.T) {
	// Selecting A2 leaves A1 as a lone edge seat; only gaps between two
	// selected seats are protected.
	sm := NewSeatMap("st-1", testSeats(theaters.SeatStandard, 10), nil, nil)
	v := &Validator{}

	sel, err := v.TryToggle(NewSelection(), "A2", sm)
	require.NoError(t, err)
	assert.True(t, sel.Contains("A2"))
}

func TestTryToggle_UnknownSeat(t *testing.T) {
	sm := NewSeatMap("st-1", testSeats(theaters.SeatStandard, 10), nil, nil)
	v := &Validator{}

	_, err := v.TryToggle(NewSelection(), "Z99", sm)
	var rejection *Rejection
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, RejectUnknownSeat, rejection.Code)
}

func TestTryToggle_SelectionLimit(t *testing.T) {
	sm := NewSeatMap("st-1", testSeats(theaters.SeatStandard, 10), nil, nil)
	v := &Validator{MaxSeats: 2}

	sel := NewSelection("A1", "A2")
	_, err := v.TryToggle(sel, "A3", sm)

	var rejection *Rejection
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, RejectSelectionLimit, rejection.Code)

	// The limit never blocks removal.
	next, err := v.TryToggle(sel, "A2", sm)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, next.Labels())
}

func TestSeatMap_HeldSeatsReportedHeld(t *testing.T) {
	sm := NewSeatMap("st-1", testSeats(theaters.SeatStandard, 3), soldSet("A1"), soldSet("A2"))

	require.NotNil(t, sm.Seat("A1"))
	assert.Equal(t, StatusSold, sm.Seat("A1").Status)
	assert.Equal(t, StatusHeld, sm.Seat("A2").Status)
	assert.Equal(t, StatusAvailable, sm.Seat("A3").Status)
}
