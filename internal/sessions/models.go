package sessions

import (
	"time"

	"github.com/google/uuid"

	"cinebook/internal/coupons"
	"cinebook/internal/theaters"
)

// BookingSession is one customer's time-boxed booking attempt for one
// showtime. A customer has at most one live (PENDING or AWAITING_PAYMENT)
// session at a time; creating a new one supersedes the old.
type BookingSession struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	CustomerID uuid.UUID `json:"customer_id" gorm:"type:uuid;not null;index"`
	ShowtimeID uuid.UUID `json:"showtime_id" gorm:"type:uuid;not null;index"`
	Status     Status    `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`

	// BasePrice snapshots the showtime's standard seat price at creation so
	// a later price change never alters a live session's quote.
	BasePrice int64 `json:"base_price" gorm:"not null"`

	PointsRedeemed int64 `json:"points_redeemed" gorm:"not null;default:0"`
	FinalAmount    int64 `json:"final_amount" gorm:"not null;default:0"`
	PointsEarned   int64 `json:"points_earned" gorm:"not null;default:0"`

	// ExpiresAt = CreatedAt + session timeout, fixed at creation. The timer
	// derives everything from this; wall-clock restarts cannot stretch it.
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`

	Seats       []SessionSeat       `json:"seats,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	Concessions []SessionConcession `json:"concessions,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	Coupons     []SessionCoupon     `json:"coupons,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	Payment     *Payment            `json:"payment,omitempty" gorm:"foreignKey:SessionID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (BookingSession) TableName() string {
	return "booking_sessions"
}

// SessionSeat is one selected seat with its price snapshot. Sold flips to
// true when the session is paid; a partial unique index on
// (showtime_id, seat_label) WHERE sold makes double-selling impossible.
type SessionSeat struct {
	ID         uuid.UUID          `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	SessionID  uuid.UUID          `json:"session_id" gorm:"type:uuid;not null;index"`
	ShowtimeID uuid.UUID          `json:"showtime_id" gorm:"type:uuid;not null;index"`
	SeatLabel  string             `json:"seat_label" gorm:"not null;size:10"`
	Class      theaters.SeatClass `json:"class" gorm:"type:varchar(20);not null"`
	Price      int64              `json:"price" gorm:"not null"`
	Sold       bool               `json:"sold" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (SessionSeat) TableName() string {
	return "session_seats"
}

type SessionConcession struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	SessionID uuid.UUID `json:"session_id" gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID `json:"item_id" gorm:"type:uuid;not null"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	UnitPrice int64     `json:"unit_price" gorm:"not null"`
	Quantity  int       `json:"quantity" gorm:"not null;check:quantity > 0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (SessionConcession) TableName() string {
	return "session_concessions"
}

// SessionCoupon snapshots an applied coupon. Position preserves attachment
// order because discount layering is order-sensitive.
type SessionCoupon struct {
	ID        uuid.UUID          `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	SessionID uuid.UUID          `json:"session_id" gorm:"type:uuid;not null;index"`
	CouponID  uuid.UUID          `json:"coupon_id" gorm:"type:uuid;not null"`
	Code      string             `json:"code" gorm:"not null;size:50"`
	Type      coupons.CouponType `json:"type" gorm:"type:varchar(20);not null"`
	Value     int64              `json:"value" gorm:"not null"`
	Balance   int64              `json:"balance" gorm:"not null;default:0"`
	Position  int                `json:"position" gorm:"not null"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (SessionCoupon) TableName() string {
	return "session_coupons"
}

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// Payment records the gateway confirmation for a paid session.
type Payment struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	SessionID     uuid.UUID     `json:"session_id" gorm:"type:uuid;not null;uniqueIndex"`
	TransactionID string        `json:"transaction_id" gorm:"not null;size:100"`
	Method        string        `json:"method" gorm:"not null;size:50"`
	Amount        int64         `json:"amount" gorm:"not null"`
	Status        PaymentStatus `json:"status" gorm:"type:varchar(20);not null"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Payment) TableName() string {
	return "payments"
}

// toCouponModel rebuilds a pricing-compatible coupon from the snapshot.
func (sc *SessionCoupon) toCouponModel() coupons.Coupon {
	return coupons.Coupon{
		ID:      sc.CouponID,
		Code:    sc.Code,
		Type:    sc.Type,
		Value:   sc.Value,
		Balance: sc.Balance,
	}
}
