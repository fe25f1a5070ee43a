package seatmap

import (
	"fmt"
	"sort"

	"cinebook/internal/theaters"
)

// RejectionCode identifies why a seat toggle was refused.
type RejectionCode string

const (
	RejectSeatUnavailable RejectionCode = "SEAT_UNAVAILABLE"
	RejectMixedSeatClass  RejectionCode = "MIXED_SEAT_CLASS"
	RejectOrphanSeatGap   RejectionCode = "ORPHAN_SEAT_GAP"
	RejectUnknownSeat     RejectionCode = "UNKNOWN_SEAT"
	RejectSelectionLimit  RejectionCode = "SELECTION_LIMIT"
)

// Rejection is a non-fatal validation failure. The caller keeps its prior
// selection and surfaces the reason to the customer.
type Rejection struct {
	Code      RejectionCode `json:"code"`
	SeatLabel string        `json:"seat_label"`
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("seat %s rejected: %s", r.SeatLabel, r.Code)
}

// Validator enforces the selection rules against a seat map snapshot.
// MaxSeats of zero means no limit.
type Validator struct {
	MaxSeats int
}

// TryToggle flips one seat in the selection. Removing an already selected
// seat always succeeds. Adding a seat is refused when the seat is held or
// sold, when it would mix seat classes within the selection, or when the
// resulting selection would strand an available seat between two selected
// seats in the same row. On rejection the returned selection is the input
// selection unchanged.
func (v *Validator) TryToggle(sel Selection, label string, sm *SeatMap) (Selection, error) {
	if sel.Contains(label) {
		next := sel.Clone()
		delete(next, label)
		return next, nil
	}

	seat := sm.Seat(label)
	if seat == nil {
		return sel, &Rejection{Code: RejectUnknownSeat, SeatLabel: label}
	}
	if seat.Status != StatusAvailable {
		return sel, &Rejection{Code: RejectSeatUnavailable, SeatLabel: label}
	}

	if class, ok := selectionClass(sel, sm); ok && class != seat.Class {
		return sel, &Rejection{Code: RejectMixedSeatClass, SeatLabel: label}
	}

	if v.MaxSeats > 0 && len(sel) >= v.MaxSeats {
		return sel, &Rejection{Code: RejectSelectionLimit, SeatLabel: label}
	}

	next := sel.Clone()
	next[label] = true

	if gap := findOrphanGap(next, sm, seat.RowLabel); gap != "" {
		return sel, &Rejection{Code: RejectOrphanSeatGap, SeatLabel: label}
	}

	return next, nil
}

// selectionClass returns the class shared by the current selection. The
// second return is false for an empty selection.
func selectionClass(sel Selection, sm *SeatMap) (theaters.SeatClass, bool) {
	for label := range sel {
		if seat := sm.Seat(label); seat != nil {
			return seat.Class, true
		}
	}
	return "", false
}

// findOrphanGap checks one row of the tentative selection: sort the selected
// columns, and for every adjacent pair with a gap, every seat strictly
// between them must be unavailable. Returns the label of the first stranded
// available seat, or "" when the row is fine. Seats at the edges of the row
// are deliberately not protected.
func findOrphanGap(sel Selection, sm *SeatMap, rowLabel string) string {
	var row *Row
	for i := range sm.Rows {
		if sm.Rows[i].Label == rowLabel {
			row = &sm.Rows[i]
			break
		}
	}
	if row == nil {
		return ""
	}

	var cols []int
	byCol := make(map[int]*SeatInfo, len(row.Seats))
	for i := range row.Seats {
		seat := &row.Seats[i]
		byCol[seat.Column] = seat
		if sel.Contains(seat.Label) {
			cols = append(cols, seat.Column)
		}
	}
	sort.Ints(cols)

	for i := 0; i+1 < len(cols); i++ {
		for col := cols[i] + 1; col < cols[i+1]; col++ {
			between := byCol[col]
			if between == nil {
				continue
			}
			if between.Status == StatusAvailable && !sel.Contains(between.Label) {
				return between.Label
			}
		}
	}
	return ""
}
