package theaters

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SeatClass categorizes a physical seat. It drives both pricing surcharges
// and the rule that a single booking may not mix classes.
type SeatClass string

const (
	SeatStandard SeatClass = "STANDARD"
	SeatPremium  SeatClass = "PREMIUM"
	SeatDouble   SeatClass = "DOUBLE"
)

func (c SeatClass) Valid() bool {
	switch c {
	case SeatStandard, SeatPremium, SeatDouble:
		return true
	}
	return false
}

type Theater struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name    string    `json:"name" gorm:"not null;size:255"`
	City    string    `json:"city" gorm:"not null;size:100;index"`
	Address string    `json:"address" gorm:"size:500"`

	Auditoriums []Auditorium `json:"auditoriums,omitempty" gorm:"foreignKey:TheaterID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Theater) TableName() string {
	return "theaters"
}

type Auditorium struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TheaterID uuid.UUID `json:"theater_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"not null;size:100"`

	Seats []Seat `json:"seats,omitempty" gorm:"foreignKey:AuditoriumID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Auditorium) TableName() string {
	return "auditoriums"
}

// Seat is one physical seat in an auditorium. Label is the row letter plus
// the column number ("A7") and is unique within the auditorium.
type Seat struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	AuditoriumID uuid.UUID `json:"auditorium_id" gorm:"type:uuid;not null;uniqueIndex:unique_seat_in_auditorium"`
	Label        string    `json:"label" gorm:"not null;size:10;uniqueIndex:unique_seat_in_auditorium"`
	RowLabel     string    `json:"row_label" gorm:"not null;size:5"`
	Column       int       `json:"column" gorm:"not null;check:\"column\" > 0"`
	Class        SeatClass `json:"class" gorm:"type:varchar(20);not null;default:'STANDARD'"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Seat) TableName() string {
	return "seats"
}

// SeatLabel builds the canonical seat identifier from row and column.
func SeatLabel(rowLabel string, column int) string {
	return fmt.Sprintf("%s%d", rowLabel, column)
}
