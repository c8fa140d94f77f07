package response

import (
	"log/slog"
	"time"

	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RoomResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	RoomType    string    `json:"roomType"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Currency    string    `json:"currency"`
	Capacity    int       `json:"capacity"`
	TotalUnits  int       `json:"totalRooms"`
	Available   bool      `json:"available"`
	Amenities   []string  `json:"amenities,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	FloorNumber int       `json:"floorNumber,omitempty"`
	SizeSqft    int       `json:"sizeSqft,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type RoomAvailabilityResponse struct {
	RoomResponse
	RemainingUnits int `json:"remainingUnits"`
}

func FromRoomRM(rm *readmodel.RoomRM) *RoomResponse {
	var resp RoomResponse
	if err := copier.Copy(&resp, rm); err != nil {
		slog.Error("failed to map room read model", "error", err)
	}
	return &resp
}

func FromRoomRMs(rms []readmodel.RoomRM) []*RoomResponse {
	result := make([]*RoomResponse, len(rms))
	for i := range rms {
		result[i] = FromRoomRM(&rms[i])
	}
	return result
}

func FromRoomAvailabilityRM(rm *readmodel.RoomAvailabilityRM) *RoomAvailabilityResponse {
	return &RoomAvailabilityResponse{
		RoomResponse:   *FromRoomRM(&rm.RoomRM),
		RemainingUnits: rm.RemainingUnits,
	}
}
