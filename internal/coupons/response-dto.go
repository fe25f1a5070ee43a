package coupons

import "time"

type CouponResponse struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Type        string     `json:"type"`
	Value       int64      `json:"value"`
	Balance     int64      `json:"balance,omitempty"`
	MinPurchase int64      `json:"min_purchase"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toCouponResponse(c *Coupon) CouponResponse {
	return CouponResponse{
		ID:          c.ID.String(),
		Code:        c.Code,
		Type:        string(c.Type),
		Value:       c.Value,
		Balance:     c.Balance,
		MinPurchase: c.MinPurchase,
		ExpiresAt:   c.ExpiresAt,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
	}
}
