package request

import (
	"stayhub/internal/usecase"
)

type RoomRequest struct {
	Name        string   `json:"name" binding:"required"`
	RoomType    string   `json:"roomType" binding:"required"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"priceCents" binding:"required,gte=0"`
	Currency    string   `json:"currency"`
	Capacity    int      `json:"capacity" binding:"required,gte=1"`
	TotalRooms  int      `json:"totalRooms" binding:"required,gte=0"`
	Amenities   []string `json:"amenities"`
	ImageURL    string   `json:"imageUrl"`
	FloorNumber int      `json:"floorNumber"`
	SizeSqft    int      `json:"sizeSqft"`
}

func (r *RoomRequest) ToInput() usecase.RoomInput {
	return usecase.RoomInput{
		Name:        r.Name,
		RoomType:    r.RoomType,
		Description: r.Description,
		PriceCents:  r.PriceCents,
		Currency:    r.Currency,
		Capacity:    r.Capacity,
		TotalUnits:  r.TotalRooms,
		Amenities:   r.Amenities,
		ImageURL:    r.ImageURL,
		FloorNumber: r.FloorNumber,
		SizeSqft:    r.SizeSqft,
	}
}
