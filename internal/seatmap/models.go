package seatmap

import (
	"sort"

	"cinebook/internal/theaters"
)

// SeatStatus is the occupancy of a seat at snapshot time.
type SeatStatus string

const (
	StatusAvailable SeatStatus = "AVAILABLE"
	StatusHeld      SeatStatus = "HELD"
	StatusSold      SeatStatus = "SOLD"
)

type SeatInfo struct {
	Label    string             `json:"label"`
	RowLabel string             `json:"row_label"`
	Column   int                `json:"column"`
	Class    theaters.SeatClass `json:"class"`
	Status   SeatStatus         `json:"status"`
}

type Row struct {
	Label string     `json:"label"`
	Seats []SeatInfo `json:"seats"`
}

// SeatMap is a point-in-time snapshot of one showtime's auditorium:
// physical layout plus occupancy. Occupancy can go stale the moment another
// customer books; the hold step re-checks against Redis atomically.
type SeatMap struct {
	ShowtimeID string `json:"showtime_id"`
	Rows       []Row  `json:"rows"`

	index map[string]*SeatInfo
}

// NewSeatMap assembles a snapshot from the physical seats and the sets of
// sold and held seat labels. Rows keep auditorium order; seats within a row
// are ordered by column.
func NewSeatMap(showtimeID string, seats []theaters.Seat, sold, held map[string]bool) *SeatMap {
	byRow := make(map[string][]SeatInfo)
	var rowOrder []string
	for _, s := range seats {
		status := StatusAvailable
		if sold[s.Label] {
			status = StatusSold
		} else if held[s.Label] {
			status = StatusHeld
		}
		if _, ok := byRow[s.RowLabel]; !ok {
			rowOrder = append(rowOrder, s.RowLabel)
		}
		byRow[s.RowLabel] = append(byRow[s.RowLabel], SeatInfo{
			Label:    s.Label,
			RowLabel: s.RowLabel,
			Column:   s.Column,
			Class:    s.Class,
			Status:   status,
		})
	}

	sort.Strings(rowOrder)
	sm := &SeatMap{ShowtimeID: showtimeID, Rows: make([]Row, 0, len(rowOrder))}
	for _, label := range rowOrder {
		rowSeats := byRow[label]
		sort.Slice(rowSeats, func(i, j int) bool { return rowSeats[i].Column < rowSeats[j].Column })
		sm.Rows = append(sm.Rows, Row{Label: label, Seats: rowSeats})
	}
	sm.buildIndex()
	return sm
}

func (sm *SeatMap) buildIndex() {
	sm.index = make(map[string]*SeatInfo)
	for i := range sm.Rows {
		for j := range sm.Rows[i].Seats {
			seat := &sm.Rows[i].Seats[j]
			sm.index[seat.Label] = seat
		}
	}
}

// Seat looks a seat up by its label ("A7"). Returns nil if the label does
// not exist in this auditorium.
func (sm *SeatMap) Seat(label string) *SeatInfo {
	if sm.index == nil {
		sm.buildIndex()
	}
	return sm.index[label]
}

// RowOf returns the row a seat belongs to, or nil.
func (sm *SeatMap) RowOf(label string) *Row {
	seat := sm.Seat(label)
	if seat == nil {
		return nil
	}
	for i := range sm.Rows {
		if sm.Rows[i].Label == seat.RowLabel {
			return &sm.Rows[i]
		}
	}
	return nil
}

// Selection is the set of seat labels chosen by one customer for one
// showtime. The zero value is an empty selection.
type Selection map[string]bool

func NewSelection(labels ...string) Selection {
	sel := make(Selection, len(labels))
	for _, l := range labels {
		sel[l] = true
	}
	return sel
}

func (s Selection) Contains(label string) bool {
	return s[label]
}

func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for l := range s {
		out[l] = true
	}
	return out
}

// Labels returns the selected seats in sorted order for stable output.
func (s Selection) Labels() []string {
	labels := make([]string, 0, len(s))
	for l := range s {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
