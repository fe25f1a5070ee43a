package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// A seat may be sold at most once per showtime. The partial index only
	// covers seats of PAID sessions, so cancelled and expired sessions do
	// not block rebooking.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_paid_seat_per_showtime
		ON session_seats (showtime_id, seat_label)
		WHERE sold = true;
	`).Error
	if err != nil {
		return err
	}

	// At most one live (non-terminal) session per customer.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_live_session_per_customer
		ON booking_sessions (customer_id)
		WHERE status IN ('PENDING', 'AWAITING_PAYMENT');
	`).Error
	if err != nil {
		return err
	}

	// Index for expiry sweeps over unpaid sessions.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_sessions_status_created
		ON booking_sessions (status, created_at);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
