package sessions

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"cinebook/internal/customers"
)

type Repository interface {
	CreateSession(ctx context.Context, session *BookingSession) error
	GetSessionByID(ctx context.Context, id string) (*BookingSession, error)
	GetLiveSessionByCustomer(ctx context.Context, customerID string) (*BookingSession, error)
	ListOverdueSessions(ctx context.Context, now time.Time, limit int) ([]BookingSession, error)

	// TransitionStatus performs a guarded state change: the row is updated
	// only if its current status still allows the transition. Returns
	// ErrInvalidTransition when the guard did not match, which makes
	// expiry and cancellation idempotent under concurrent triggers.
	TransitionStatus(ctx context.Context, sessionID string, from []Status, to Status) error

	ReplaceSeats(ctx context.Context, sessionID string, seats []SessionSeat) error
	UpsertConcession(ctx context.Context, line *SessionConcession) error
	DeleteConcession(ctx context.Context, sessionID, itemID string) error
	AddCoupon(ctx context.Context, coupon *SessionCoupon) error
	RemoveCoupon(ctx context.Context, sessionID, code string) error
	SetPointsRedeemed(ctx context.Context, sessionID string, points int64) error

	// FinalizePayment commits the whole payment in one transaction: the
	// guarded PAID transition, the sold flags, the payment row, the
	// loyalty point movements and any extra settlement work.
	FinalizePayment(ctx context.Context, session *BookingSession, payment *Payment, pointsToDeduct, pointsToAward int64, settle func(tx *gorm.DB) error) error
}

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrNoLiveSession     = errors.New("no live session for customer")
	ErrInvalidTransition = errors.New("invalid session state transition")
	ErrSeatAlreadySold   = errors.New("seat already sold for this showtime")
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) CreateSession(ctx context.Context, session *BookingSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *repository) GetSessionByID(ctx context.Context, id string) (*BookingSession, error) {
	var session BookingSession
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Preload("Concessions").
		Preload("Coupons", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Payment").
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *repository) GetLiveSessionByCustomer(ctx context.Context, customerID string) (*BookingSession, error) {
	var session BookingSession
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status IN ?", customerID, LiveStatuses).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoLiveSession
		}
		return nil, err
	}
	return &session, nil
}

func (r *repository) ListOverdueSessions(ctx context.Context, now time.Time, limit int) ([]BookingSession, error) {
	var sessions []BookingSession
	err := r.db.WithContext(ctx).
		Where("status IN ? AND expires_at <= ?", LiveStatuses, now).
		Order("expires_at ASC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *repository) TransitionStatus(ctx context.Context, sessionID string, from []Status, to Status) error {
	result := r.db.WithContext(ctx).
		Model(&BookingSession{}).
		Where("id = ? AND status IN ?", sessionID, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (r *repository) ReplaceSeats(ctx context.Context, sessionID string, seats []SessionSeat) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&SessionSeat{}).Error; err != nil {
			return err
		}
		if len(seats) > 0 {
			if err := tx.Create(&seats).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) UpsertConcession(ctx context.Context, line *SessionConcession) error {
	var existing SessionConcession
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND item_id = ?", line.SessionID, line.ItemID).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(line).Error
		}
		return err
	}

	existing.Quantity = line.Quantity
	existing.UnitPrice = line.UnitPrice
	existing.Name = line.Name
	return r.db.WithContext(ctx).Save(&existing).Error
}

func (r *repository) DeleteConcession(ctx context.Context, sessionID, itemID string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ? AND item_id = ?", sessionID, itemID).
		Delete(&SessionConcession{}).Error
}

func (r *repository) AddCoupon(ctx context.Context, coupon *SessionCoupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

func (r *repository) RemoveCoupon(ctx context.Context, sessionID, code string) error {
	result := r.db.WithContext(ctx).
		Where("session_id = ? AND code = ?", sessionID, code).
		Delete(&SessionCoupon{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("coupon not applied to session")
	}
	return nil
}

func (r *repository) SetPointsRedeemed(ctx context.Context, sessionID string, points int64) error {
	return r.db.WithContext(ctx).
		Model(&BookingSession{}).
		Where("id = ?", sessionID).
		Update("points_redeemed", points).Error
}

func (r *repository) FinalizePayment(ctx context.Context, session *BookingSession, payment *Payment, pointsToDeduct, pointsToAward int64, settle func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&BookingSession{}).
			Where("id = ? AND status = ?", session.ID, StatusAwaitingPayment).
			Updates(map[string]interface{}{
				"status":          StatusPaid,
				"final_amount":    session.FinalAmount,
				"points_redeemed": session.PointsRedeemed,
				"points_earned":   session.PointsEarned,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		// Flipping sold=true trips the partial unique index if another
		// session already bought any of these seats.
		if err := tx.Model(&SessionSeat{}).
			Where("session_id = ?", session.ID).
			Update("sold", true).Error; err != nil {
			return ErrSeatAlreadySold
		}

		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		if pointsToDeduct > 0 {
			res := tx.Model(&customers.Customer{}).
				Where("id = ? AND loyalty_points >= ?", session.CustomerID, pointsToDeduct).
				Update("loyalty_points", gorm.Expr("loyalty_points - ?", pointsToDeduct))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return customers.ErrInsufficientPoints
			}
		}

		if pointsToAward > 0 {
			if err := tx.Model(&customers.Customer{}).
				Where("id = ?", session.CustomerID).
				Update("loyalty_points", gorm.Expr("loyalty_points + ?", pointsToAward)).Error; err != nil {
				return err
			}
		}

		if settle != nil {
			return settle(tx)
		}
		return nil
	})
}
