package catalog

import (
	"time"

	"github.com/google/uuid"
)

type Movie struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string      `json:"title" gorm:"not null;size:255"`
	Description string      `json:"description" gorm:"type:text"`
	Genre       string      `json:"genre" gorm:"size:100"`
	Rating      string      `json:"rating" gorm:"size:10"`
	DurationMin int         `json:"duration_min" gorm:"not null;check:duration_min > 0"`
	PosterURL   string      `json:"poster_url" gorm:"size:500"`
	Status      MovieStatus `json:"status" gorm:"type:varchar(20);default:'COMING_SOON'"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Movie) TableName() string {
	return "movies"
}

// Showtime is a single screening of a movie in an auditorium. BasePrice is
// the standard seat price in the smallest currency unit; surcharges for
// premium and double seats are added on top of it at pricing time.
type Showtime struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	MovieID      uuid.UUID      `json:"movie_id" gorm:"type:uuid;not null;index"`
	AuditoriumID uuid.UUID      `json:"auditorium_id" gorm:"type:uuid;not null;index"`
	StartsAt     time.Time      `json:"starts_at" gorm:"not null;index"`
	BasePrice    int64          `json:"base_price" gorm:"not null;check:base_price >= 0"`
	Status       ShowtimeStatus `json:"status" gorm:"type:varchar(20);default:'SCHEDULED'"`

	Movie *Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Showtime) TableName() string {
	return "showtimes"
}
