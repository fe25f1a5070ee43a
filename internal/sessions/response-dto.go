package sessions

import (
	"time"

	"cinebook/internal/pricing"
)

type SessionResponse struct {
	ID               string                `json:"id"`
	ShowtimeID       string                `json:"showtime_id"`
	Status           string                `json:"status"`
	Seats            []SessionSeatResponse `json:"seats"`
	Concessions      []ConcessionResponse  `json:"concessions"`
	Coupons          []string              `json:"coupons"`
	PointsRedeemed   int64                 `json:"points_redeemed"`
	RemainingSeconds int64                 `json:"remaining_seconds"`
	ExpiresAt        time.Time             `json:"expires_at"`
	CreatedAt        time.Time             `json:"created_at"`

	FinalAmount  int64 `json:"final_amount,omitempty"`
	PointsEarned int64 `json:"points_earned,omitempty"`
}

type SessionSeatResponse struct {
	Label string `json:"label"`
	Class string `json:"class"`
	Price int64  `json:"price"`
}

type ConcessionResponse struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type QuoteResponse struct {
	Session   SessionResponse   `json:"session"`
	Breakdown pricing.Breakdown `json:"breakdown"`
}

func toSessionResponse(session *BookingSession, now time.Time) SessionResponse {
	resp := SessionResponse{
		ID:             session.ID.String(),
		ShowtimeID:     session.ShowtimeID.String(),
		Status:         session.Status.String(),
		Seats:          make([]SessionSeatResponse, 0, len(session.Seats)),
		Concessions:    make([]ConcessionResponse, 0, len(session.Concessions)),
		Coupons:        make([]string, 0, len(session.Coupons)),
		PointsRedeemed: session.PointsRedeemed,
		ExpiresAt:      session.ExpiresAt,
		CreatedAt:      session.CreatedAt,
		FinalAmount:    session.FinalAmount,
		PointsEarned:   session.PointsEarned,
	}

	if session.Status.IsLive() {
		resp.RemainingSeconds = Timer{Deadline: session.ExpiresAt}.RemainingSeconds(now)
	}

	for _, seat := range session.Seats {
		resp.Seats = append(resp.Seats, SessionSeatResponse{
			Label: seat.SeatLabel,
			Class: string(seat.Class),
			Price: seat.Price,
		})
	}
	for _, c := range session.Concessions {
		resp.Concessions = append(resp.Concessions, ConcessionResponse{
			ItemID:    c.ItemID.String(),
			Name:      c.Name,
			UnitPrice: c.UnitPrice,
			Quantity:  c.Quantity,
		})
	}
	for _, sc := range session.Coupons {
		resp.Coupons = append(resp.Coupons, sc.Code)
	}
	return resp
}
