package notifications

import "time"

// EventType names a booking lifecycle event published to Kafka.
type EventType string

const (
	EventSessionCreated  EventType = "session.created"
	EventSessionExpired  EventType = "session.expired"
	EventSessionCanceled EventType = "session.cancelled"
	EventBookingPaid     EventType = "booking.paid"
)

// BookingEvent is the message published for every session lifecycle change.
// Keyed by customer ID so one customer's events stay ordered per partition.
type BookingEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	SessionID  string    `json:"session_id"`
	CustomerID string    `json:"customer_id"`
	ShowtimeID string    `json:"showtime_id"`

	// Set on booking.paid only.
	SeatLabels  []string `json:"seat_labels,omitempty"`
	FinalAmount int64    `json:"final_amount,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}
