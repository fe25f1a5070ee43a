package pricing

import (
	"cinebook/internal/coupons"
	"cinebook/internal/customers"
	"cinebook/internal/shared/config"
)

// CouponDiscount is one coupon's contribution, in application order.
type CouponDiscount struct {
	Code   string             `json:"code"`
	Type   coupons.CouponType `json:"type"`
	Amount int64              `json:"amount"`
}

// Breakdown itemizes how the final amount was reached. Discounts apply in
// a fixed order: membership tier first, then coupons in the order they were
// attached, then loyalty points.
type Breakdown struct {
	SeatSubtotal       int64 `json:"seat_subtotal"`
	ConcessionSubtotal int64 `json:"concession_subtotal"`
	Subtotal           int64 `json:"subtotal"`

	TierSeatDiscount       int64 `json:"tier_seat_discount"`
	TierConcessionDiscount int64 `json:"tier_concession_discount"`

	CouponDiscounts []CouponDiscount `json:"coupon_discounts,omitempty"`

	// PointsRedeemed is the number of points actually consumed. When the cap
	// truncates the redemption, the unused points stay on the customer's
	// balance.
	PointsRedeemed int64 `json:"points_redeemed"`
	PointsDiscount int64 `json:"points_discount"`
	PointsCap      int64 `json:"points_cap"`

	TotalDiscount int64 `json:"total_discount"`
	FinalAmount   int64 `json:"final_amount"`
}

// DiscountEngine layers tier, coupon and loyalty point discounts onto a
// base price deterministically.
type DiscountEngine struct {
	pricing    config.PricingConfig
	membership config.MembershipConfig
}

func NewDiscountEngine(cfg *config.Config) *DiscountEngine {
	return &DiscountEngine{
		pricing:    cfg.Pricing,
		membership: cfg.Membership,
	}
}

// Quote computes the full price breakdown.
//
// Tier discounts are percentages of each category's subtotal. Every coupon
// then applies to the running remainder: percentage coupons take a floor
// percentage of it, fixed and stored-balance coupons take a flat amount
// capped at it, so the remainder never goes below zero. Points redeem last
// at PointValue per point; only whole points that fit under PointsCapPercent
// of the remainder are consumed, the rest are left untouched.
func (d *DiscountEngine) Quote(
	seatSubtotal, concessionSubtotal int64,
	tier customers.MembershipTier,
	applied []coupons.Coupon,
	pointsToRedeem int64,
) Breakdown {
	b := Breakdown{
		SeatSubtotal:       seatSubtotal,
		ConcessionSubtotal: concessionSubtotal,
		Subtotal:           seatSubtotal + concessionSubtotal,
	}

	seatPct, concPct := tierPercents(tier, d.membership)
	b.TierSeatDiscount = percentOf(seatSubtotal, seatPct)
	b.TierConcessionDiscount = percentOf(concessionSubtotal, concPct)

	remaining := b.Subtotal - b.TierSeatDiscount - b.TierConcessionDiscount

	for _, coupon := range applied {
		amount := couponDiscount(&coupon, remaining)
		b.CouponDiscounts = append(b.CouponDiscounts, CouponDiscount{
			Code:   coupon.Code,
			Type:   coupon.Type,
			Amount: amount,
		})
		remaining -= amount
	}

	b.PointsCap = percentOf(remaining, d.pricing.PointsCapPercent)
	if pointsToRedeem > 0 && d.pricing.PointValue > 0 {
		usable := b.PointsCap / d.pricing.PointValue
		if pointsToRedeem < usable {
			usable = pointsToRedeem
		}
		b.PointsRedeemed = usable
		b.PointsDiscount = usable * d.pricing.PointValue
	}

	b.FinalAmount = remaining - b.PointsDiscount
	if b.FinalAmount < 0 {
		b.FinalAmount = 0
	}
	b.TotalDiscount = b.Subtotal - b.FinalAmount
	return b
}

// couponDiscount computes a single coupon's reduction against the amount
// still payable.
func couponDiscount(c *coupons.Coupon, remaining int64) int64 {
	if remaining <= 0 {
		return 0
	}

	var amount int64
	switch c.Type {
	case coupons.TypePercentage:
		amount = percentOf(remaining, c.Value)
	case coupons.TypeFixed:
		amount = c.Value
	case coupons.TypeStoredBalance:
		amount = c.Balance
	}

	if amount > remaining {
		amount = remaining
	}
	if amount < 0 {
		amount = 0
	}
	return amount
}
