package seatmap

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// SoldLabels returns the seat labels permanently sold for a showtime.
	SoldLabels(ctx context.Context, showtimeID string) (map[string]bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

// Sold seats live in session_seats rows flagged sold=true when their session
// reached PAID. Reading the table directly keeps this package independent of
// the sessions package.
func (r *repository) SoldLabels(ctx context.Context, showtimeID string) (map[string]bool, error) {
	var labels []string
	err := r.db.WithContext(ctx).
		Table("session_seats").
		Where("showtime_id = ? AND sold = ?", showtimeID, true).
		Pluck("seat_label", &labels).Error
	if err != nil {
		return nil, err
	}

	sold := make(map[string]bool, len(labels))
	for _, l := range labels {
		sold[l] = true
	}
	return sold, nil
}
