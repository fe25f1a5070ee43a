package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinebook/internal/coupons"
	"cinebook/internal/customers"
	"cinebook/internal/shared/config"
	"cinebook/internal/theaters"
)

func testConfig() *config.Config {
	return &config.Config{
		Pricing: config.PricingConfig{
			PremiumSurcharge: 20000,
			DoubleSurcharge:  50000,
			PointValue:       1000,
			PointsCapPercent: 90,
			EarnRate:         10000,
		},
		Membership: config.MembershipConfig{
			MemberSeatPercent: 3,
			MemberConcPercent: 5,
			VIPSeatPercent:    7,
			VIPConcPercent:    10,
			VVIPSeatPercent:   10,
			VVIPConcPercent:   15,
		},
	}
}

func TestEngine_PriceOfSeat(t *testing.T) {
	engine := NewEngine(testConfig())

	tests := []struct {
		name      string
		basePrice int64
		class     theaters.SeatClass
		want      int64
	}{
		{"standard has no surcharge", 100000, theaters.SeatStandard, 100000},
		{"premium adds surcharge", 100000, theaters.SeatPremium, 120000},
		{"double adds surcharge", 100000, theaters.SeatDouble, 150000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.PriceOfSeat(tt.basePrice, tt.class))
		})
	}
}

func TestEngine_SeatSubtotal_TwoPremiumSeats(t *testing.T) {
	engine := NewEngine(testConfig())

	subtotal := engine.SeatSubtotal(100000, []theaters.SeatClass{
		theaters.SeatPremium, theaters.SeatPremium,
	})
	assert.Equal(t, int64(240000), subtotal)
}

func TestEngine_ConcessionSubtotal(t *testing.T) {
	engine := NewEngine(testConfig())

	subtotal := engine.ConcessionSubtotal([]ConcessionLine{
		{UnitPrice: 45000, Quantity: 2},
		{UnitPrice: 30000, Quantity: 1},
		{UnitPrice: 99999, Quantity: 0},
	})
	assert.Equal(t, int64(120000), subtotal)
}

func TestEngine_PointsEarned(t *testing.T) {
	engine := NewEngine(testConfig())

	assert.Equal(t, int64(31), engine.PointsEarned(315000))
	assert.Equal(t, int64(0), engine.PointsEarned(9999))
	assert.Equal(t, int64(0), engine.PointsEarned(0))
}

func TestQuote_TierCouponPointsLayering(t *testing.T) {
	// Subtotal 500,000; VIP seat discount 7% -> 465,000; fixed coupon
	// 50,000 -> 415,000; 100 points at 1,000/point, cap 90% of 415,000 =
	// 373,500 -> points discount 100,000 -> final 315,000.
	d := NewDiscountEngine(testConfig())

	b := d.Quote(500000, 0, customers.TierVIP, []coupons.Coupon{
		{Code: "FLAT50K", Type: coupons.TypeFixed, Value: 50000},
	}, 100)

	assert.Equal(t, int64(500000), b.Subtotal)
	assert.Equal(t, int64(35000), b.TierSeatDiscount)
	require.Len(t, b.CouponDiscounts, 1)
	assert.Equal(t, int64(50000), b.CouponDiscounts[0].Amount)
	assert.Equal(t, int64(373500), b.PointsCap)
	assert.Equal(t, int64(100), b.PointsRedeemed)
	assert.Equal(t, int64(100000), b.PointsDiscount)
	assert.Equal(t, int64(315000), b.FinalAmount)
	assert.Equal(t, int64(185000), b.TotalDiscount)
}

func TestQuote_TierDiscountsPerCategory(t *testing.T) {
	d := NewDiscountEngine(testConfig())

	tests := []struct {
		tier         customers.MembershipTier
		wantSeatDisc int64
		wantConcDisc int64
	}{
		{customers.TierBase, 0, 0},
		{customers.TierMember, 3000, 1000},
		{customers.TierVIP, 7000, 2000},
		{customers.TierVVIP, 10000, 3000},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			b := d.Quote(100000, 20000, tt.tier, nil, 0)
			assert.Equal(t, tt.wantSeatDisc, b.TierSeatDiscount)
			assert.Equal(t, tt.wantConcDisc, b.TierConcessionDiscount)
		})
	}
}

func TestQuote_PercentageRoundsDown(t *testing.T) {
	d := NewDiscountEngine(testConfig())

	// 3% of 99,999 = 2,999.97, floored to 2,999.
	b := d.Quote(99999, 0, customers.TierMember, nil, 0)
	assert.Equal(t, int64(2999), b.TierSeatDiscount)
	assert.Equal(t, int64(97000), b.FinalAmount)
}

func TestQuote_FixedCouponsCommute(t *testing.T) {
	d := NewDiscountEngine(testConfig())

	a := coupons.Coupon{Code: "A", Type: coupons.TypeFixed, Value: 30000}
	b := coupons.Coupon{Code: "B", Type: coupons.TypeFixed, Value: 70000}

	ab := d.Quote(200000, 0, customers.TierBase, []coupons.Coupon{a, b}, 0)
	ba := d.Quote(200000, 0, customers.TierBase, []coupons.Coupon{b, a}, 0)

	assert.Equal(t, ab.FinalAmount, ba.FinalAmount)
	assert.Equal(t, int64(100000), ab.FinalAmount)
}

func TestQuote_CouponOrderMattersForMixedTypes(t *testing.T) {
	d := NewDiscountEngine(testConfig())

	pct := coupons.Coupon{Code: "PCT10", Type: coupons.TypePercentage, Value: 10}
	fixed := coupons.Coupon{Code: "FLAT50K", Type: coupons.TypeFixed, Value: 50000}

	// pct first: 100,000 -> 90,000 -> 40,000.
	pctFirst := d.Quote(100000, 0, customers.TierBase, []coupons.Coupon{pct, fixed}, 0)
	assert.Equal(t, int64(40000), pctFirst.FinalAmount)

	// fixed first: 100,000 -> 50,000 -> 45,000.
	fixedFirst := d.Quote(100000, 0, customers.TierBase, []coupons.Coupon{fixed, pct}, 0)
	assert.Equal(t, int64(45000), fixedFirst.FinalAmount)
}

func TestQuote_FixedCouponCappedAtRemaining(t *testing.T) {
	d := NewDiscountEngine(testConfig())

	b := d.Quote(30000, 0, customers.TierBase, []coupons.Coupon{
		{Code: "FLAT50K", Type: coupons.TypeFixed, Value: 50000},
	}, 0)

	require.Len(t, b.CouponDiscounts, 1)
	assert.Equal(t, int64(30000), b.CouponDiscounts[0].Amount)
	assert.Equal(t, int64(0), b.FinalAmount)
}

func TestQuote_StoredBalanceSpendsUpToBalance(t *testing.T) {
	d := NewDiscountEngine(testConfig())

	b := d.Quote(200000, 0, customers.TierBase, []coupons.Coupon{
		{Code: "GIFT", Type: coupons.TypeStoredBalance, Balance: 150000},
	}, 0)

	require.Len(t, b.CouponDiscounts, 1)
	assert.Equal(t, int64(150000), b.CouponDiscounts[0].Amount)
	assert.Equal(t, int64(50000), b.FinalAmount)
}

func TestQuote_PointsCappedAtNinetyPercent(t *testing.T) {
	d := NewDiscountEngine(testConfig())

	// 500 points would cover 500,000 but the cap is 90% of 100,000. Only
	// the 90 points that fit under the cap are consumed; the other 410 stay
	// on the customer's balance.
	b := d.Quote(100000, 0, customers.TierBase, nil, 500)
	assert.Equal(t, int64(90000), b.PointsCap)
	assert.Equal(t, int64(90), b.PointsRedeemed)
	assert.Equal(t, int64(90000), b.PointsDiscount)
	assert.Equal(t, int64(10000), b.FinalAmount)
}

func TestQuote_PointsNotConsumedWhenNothingPayable(t *testing.T) {
	d := NewDiscountEngine(testConfig())

	b := d.Quote(100000, 0, customers.TierBase, []coupons.Coupon{
		{Code: "ALL", Type: coupons.TypePercentage, Value: 100},
	}, 50)
	assert.Equal(t, int64(0), b.PointsRedeemed)
	assert.Equal(t, int64(0), b.PointsDiscount)
	assert.Equal(t, int64(0), b.FinalAmount)
}

func TestQuote_FinalAmountNeverNegative(t *testing.T) {
	d := NewDiscountEngine(testConfig())

	tests := []struct {
		name    string
		seats   int64
		conc    int64
		tier    customers.MembershipTier
		coupons []coupons.Coupon
		points  int64
	}{
		{"zero subtotal", 0, 0, customers.TierVVIP, nil, 100},
		{"stacked oversized fixed coupons", 50000, 0, customers.TierBase, []coupons.Coupon{
			{Code: "A", Type: coupons.TypeFixed, Value: 100000},
			{Code: "B", Type: coupons.TypeFixed, Value: 100000},
		}, 0},
		{"full percentage plus points", 100000, 50000, customers.TierVVIP, []coupons.Coupon{
			{Code: "ALL", Type: coupons.TypePercentage, Value: 100},
		}, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := d.Quote(tt.seats, tt.conc, tt.tier, tt.coupons, tt.points)
			assert.GreaterOrEqual(t, b.FinalAmount, int64(0))
			assert.Equal(t, b.Subtotal-b.TotalDiscount, b.FinalAmount)
		})
	}
}

func TestQuote_NoDiscounts(t *testing.T) {
	d := NewDiscountEngine(testConfig())

	b := d.Quote(120000, 30000, customers.TierBase, nil, 0)
	assert.Equal(t, int64(150000), b.FinalAmount)
	assert.Equal(t, int64(0), b.TotalDiscount)
}
