package concessions

import (
	"time"

	"github.com/google/uuid"
)

// Item is a food or beverage add-on. Price is in the smallest currency unit.
type Item struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Category  string    `json:"category" gorm:"size:100;index"`
	Price     int64     `json:"price" gorm:"not null;check:price >= 0"`
	ImageURL  string    `json:"image_url" gorm:"size:500"`
	Available bool      `json:"available" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Item) TableName() string {
	return "concession_items"
}

// Selection maps item ID to quantity. Quantities never go below zero and
// zero entries are pruned, so an empty map means nothing selected.
type Selection map[string]int

func NewSelection() Selection {
	return make(Selection)
}

// Adjust changes an item's quantity by delta and returns the new quantity.
// A result at or below zero removes the entry.
func (s Selection) Adjust(itemID string, delta int) int {
	qty := s[itemID] + delta
	if qty <= 0 {
		delete(s, itemID)
		return 0
	}
	s[itemID] = qty
	return qty
}

func (s Selection) Quantity(itemID string) int {
	return s[itemID]
}

func (s Selection) TotalItems() int {
	var total int
	for _, qty := range s {
		total += qty
	}
	return total
}
