package readmodel

import (
	"time"

	"github.com/google/uuid"
)

type RoomRM struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	RoomType    string    `json:"room_type"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Currency    string    `json:"currency"`
	Capacity    int       `json:"capacity"`
	TotalUnits  int       `json:"total_rooms"`
	Available   bool      `json:"available"`
	Amenities   []string  `json:"amenities,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	FloorNumber int       `json:"floor_number,omitempty"`
	SizeSqft    int       `json:"size_sqft,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoomAvailabilityRM is a room with the number of unreserved units for a
// requested stay period.
type RoomAvailabilityRM struct {
	RoomRM
	RemainingUnits int `json:"remaining_units"`
}
