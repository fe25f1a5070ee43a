package catalog

import "time"

type MovieResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genre       string    `json:"genre"`
	Rating      string    `json:"rating"`
	DurationMin int       `json:"duration_min"`
	PosterURL   string    `json:"poster_url"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ShowtimeResponse struct {
	ID           string    `json:"id"`
	MovieID      string    `json:"movie_id"`
	MovieTitle   string    `json:"movie_title,omitempty"`
	AuditoriumID string    `json:"auditorium_id"`
	StartsAt     time.Time `json:"starts_at"`
	BasePrice    int64     `json:"base_price"`
	Status       string    `json:"status"`
}

func toMovieResponse(m *Movie) MovieResponse {
	return MovieResponse{
		ID:          m.ID.String(),
		Title:       m.Title,
		Description: m.Description,
		Genre:       m.Genre,
		Rating:      m.Rating,
		DurationMin: m.DurationMin,
		PosterURL:   m.PosterURL,
		Status:      string(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toShowtimeResponse(st *Showtime) ShowtimeResponse {
	resp := ShowtimeResponse{
		ID:           st.ID.String(),
		MovieID:      st.MovieID.String(),
		AuditoriumID: st.AuditoriumID.String(),
		StartsAt:     st.StartsAt,
		BasePrice:    st.BasePrice,
		Status:       string(st.Status),
	}
	if st.Movie != nil {
		resp.MovieTitle = st.Movie.Title
	}
	return resp
}

func toShowtimeResponses(showtimes []Showtime) []ShowtimeResponse {
	resps := make([]ShowtimeResponse, 0, len(showtimes))
	for i := range showtimes {
		resps = append(resps, toShowtimeResponse(&showtimes[i]))
	}
	return resps
}
