package catalog

import "time"

type CreateMovieRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=2000"`
	Genre       string `json:"genre" validate:"max=100"`
	Rating      string `json:"rating" validate:"max=10"`
	DurationMin int    `json:"duration_min" validate:"required,gt=0"`
	PosterURL   string `json:"poster_url" validate:"omitempty,url,max=500"`
}

type UpdateMovieRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Genre       *string `json:"genre" validate:"omitempty,max=100"`
	Rating      *string `json:"rating" validate:"omitempty,max=10"`
	DurationMin *int    `json:"duration_min" validate:"omitempty,gt=0"`
	PosterURL   *string `json:"poster_url" validate:"omitempty,url,max=500"`
	Status      *string `json:"status" validate:"omitempty,oneof=COMING_SOON NOW_SHOWING ARCHIVED"`
}

type CreateShowtimeRequest struct {
	MovieID      string    `json:"movie_id" validate:"required,uuid"`
	AuditoriumID string    `json:"auditorium_id" validate:"required,uuid"`
	StartsAt     time.Time `json:"starts_at" validate:"required"`
	BasePrice    int64     `json:"base_price" validate:"required,gte=0"`
}

type UpdateShowtimeRequest struct {
	StartsAt  *time.Time `json:"starts_at"`
	BasePrice *int64     `json:"base_price" validate:"omitempty,gte=0"`
	Status    *string    `json:"status" validate:"omitempty,oneof=SCHEDULED CANCELLED FINISHED"`
}
