package coupons

import (
	"time"

	"github.com/google/uuid"
)

// CouponType determines how a coupon reduces the amount due.
type CouponType string

const (
	// TypePercentage takes Value percent off the remaining amount.
	TypePercentage CouponType = "PERCENTAGE"
	// TypeFixed takes Value off, capped at the remaining amount.
	TypeFixed CouponType = "FIXED"
	// TypeStoredBalance is a gift-card style coupon: spends up to Balance,
	// capped at the remaining amount.
	TypeStoredBalance CouponType = "STORED_BALANCE"
)

type Coupon struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Code        string     `json:"code" gorm:"not null;size:50;uniqueIndex"`
	Type        CouponType `json:"type" gorm:"type:varchar(20);not null"`
	Value       int64      `json:"value" gorm:"not null;check:value >= 0"`
	Balance     int64      `json:"balance" gorm:"not null;default:0;check:balance >= 0"`
	MinPurchase int64      `json:"min_purchase" gorm:"not null;default:0"`
	ExpiresAt   *time.Time `json:"expires_at"`
	Active      bool       `json:"active" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// Expired reports whether the coupon is past its expiry at the given time.
// Coupons without an expiry never expire.
func (c *Coupon) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// Redemption records a stored-balance spend against a paid session.
type Redemption struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	CouponID  uuid.UUID `json:"coupon_id" gorm:"type:uuid;not null;index"`
	SessionID uuid.UUID `json:"session_id" gorm:"type:uuid;not null;index"`
	Amount    int64     `json:"amount" gorm:"not null;check:amount >= 0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Redemption) TableName() string {
	return "coupon_redemptions"
}
