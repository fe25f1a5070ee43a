package coupons

import "time"

type CreateCouponRequest struct {
	Code        string     `json:"code" validate:"required,min=3,max=50"`
	Type        string     `json:"type" validate:"required,oneof=PERCENTAGE FIXED STORED_BALANCE"`
	Value       int64      `json:"value" validate:"gte=0"`
	Balance     int64      `json:"balance" validate:"gte=0"`
	MinPurchase int64      `json:"min_purchase" validate:"gte=0"`
	ExpiresAt   *time.Time `json:"expires_at"`
}
