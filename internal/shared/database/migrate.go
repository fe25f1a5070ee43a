package database

import (
	"cinebook/internal/catalog"
	"cinebook/internal/concessions"
	"cinebook/internal/coupons"
	"cinebook/internal/customers"
	"cinebook/internal/sessions"
	"cinebook/internal/theaters"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&customers.Customer{},
		&catalog.Movie{},
		&catalog.Showtime{},
		&theaters.Theater{},
		&theaters.Auditorium{},
		&theaters.Seat{},
		&concessions.Item{},
		&coupons.Coupon{},
		&coupons.Redemption{},
		&sessions.BookingSession{},
		&sessions.SessionSeat{},
		&sessions.SessionConcession{},
		&sessions.SessionCoupon{},
		&sessions.Payment{},
	)
}
