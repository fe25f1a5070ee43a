package pricing

import (
	"cinebook/internal/customers"
	"cinebook/internal/shared/config"
	"cinebook/internal/theaters"
)

// All amounts are in the smallest currency unit. Percentages always round
// down via integer division so the customer is never overcharged a
// fractional unit.

// ConcessionLine is one concession item in a purchase.
type ConcessionLine struct {
	ItemID    string
	Name      string
	UnitPrice int64
	Quantity  int
}

// Engine computes base prices before any discount.
type Engine struct {
	pricing config.PricingConfig
}

func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		pricing: cfg.Pricing,
	}
}

// PriceOfSeat is the showtime base price plus the class surcharge.
func (e *Engine) PriceOfSeat(basePrice int64, class theaters.SeatClass) int64 {
	switch class {
	case theaters.SeatPremium:
		return basePrice + e.pricing.PremiumSurcharge
	case theaters.SeatDouble:
		return basePrice + e.pricing.DoubleSurcharge
	default:
		return basePrice
	}
}

func (e *Engine) SeatSubtotal(basePrice int64, classes []theaters.SeatClass) int64 {
	var subtotal int64
	for _, class := range classes {
		subtotal += e.PriceOfSeat(basePrice, class)
	}
	return subtotal
}

func (e *Engine) ConcessionSubtotal(lines []ConcessionLine) int64 {
	var subtotal int64
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		subtotal += line.UnitPrice * int64(line.Quantity)
	}
	return subtotal
}

// PointsEarned converts a paid amount into loyalty points. One point per
// EarnRate units spent, rounded down.
func (e *Engine) PointsEarned(finalAmount int64) int64 {
	if e.pricing.EarnRate <= 0 || finalAmount <= 0 {
		return 0
	}
	return finalAmount / e.pricing.EarnRate
}

// tierPercents returns the seat and concession discount percentages for a
// membership tier.
func tierPercents(tier customers.MembershipTier, m config.MembershipConfig) (seatPct, concPct int64) {
	switch tier {
	case customers.TierMember:
		return m.MemberSeatPercent, m.MemberConcPercent
	case customers.TierVIP:
		return m.VIPSeatPercent, m.VIPConcPercent
	case customers.TierVVIP:
		return m.VVIPSeatPercent, m.VVIPConcPercent
	default:
		return 0, 0
	}
}

func percentOf(amount, percent int64) int64 {
	if amount <= 0 || percent <= 0 {
		return 0
	}
	return amount * percent / 100
}
