package theaters

import "time"

type TheaterResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	City        string               `json:"city"`
	Address     string               `json:"address"`
	Auditoriums []AuditoriumResponse `json:"auditoriums,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

type AuditoriumResponse struct {
	ID        string         `json:"id"`
	TheaterID string         `json:"theater_id"`
	Name      string         `json:"name"`
	SeatCount int            `json:"seat_count"`
	Seats     []SeatResponse `json:"seats,omitempty"`
}

type SeatResponse struct {
	Label    string `json:"label"`
	RowLabel string `json:"row_label"`
	Column   int    `json:"column"`
	Class    string `json:"class"`
}

func toTheaterResponse(t *Theater) TheaterResponse {
	resp := TheaterResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		City:      t.City,
		Address:   t.Address,
		CreatedAt: t.CreatedAt,
	}
	for i := range t.Auditoriums {
		resp.Auditoriums = append(resp.Auditoriums, toAuditoriumResponse(&t.Auditoriums[i], false))
	}
	return resp
}

func toAuditoriumResponse(a *Auditorium, includeSeats bool) AuditoriumResponse {
	resp := AuditoriumResponse{
		ID:        a.ID.String(),
		TheaterID: a.TheaterID.String(),
		Name:      a.Name,
		SeatCount: len(a.Seats),
	}
	if includeSeats {
		for i := range a.Seats {
			resp.Seats = append(resp.Seats, toSeatResponse(&a.Seats[i]))
		}
	}
	return resp
}

func toSeatResponse(s *Seat) SeatResponse {
	return SeatResponse{
		Label:    s.Label,
		RowLabel: s.RowLabel,
		Column:   s.Column,
		Class:    string(s.Class),
	}
}
