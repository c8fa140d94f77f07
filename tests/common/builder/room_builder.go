//go:build unit || e2e

package builder

import (
	"time"

	"stayhub/internal/domain/room"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type RoomBuilder struct {
	Name       string
	RoomType   string
	PriceCents int64
	Currency   string
	Capacity   int
	TotalUnits int
	Available  bool
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		Name:       "Ocean Standard",
		RoomType:   "STANDARD",
		PriceCents: 12000,
		Currency:   "usd",
		Capacity:   2,
		TotalUnits: 5,
		Available:  true,
	}
}

func (b *RoomBuilder) BuildDomain() (*room.Room, error) {
	roomType, err := room.NewType(b.RoomType)
	if err != nil {
		return nil, err
	}

	return room.NewRoom(room.NewRoomParams{
		Name:       b.Name,
		RoomType:   roomType,
		PriceCents: b.PriceCents,
		Currency:   b.Currency,
		Capacity:   b.Capacity,
		TotalUnits: b.TotalUnits,
	})
}

func (b *RoomBuilder) BuildReadModel() *readmodel.RoomRM {
	now := time.Now().UTC()
	return &readmodel.RoomRM{
		ID:         uuid.New(),
		Name:       b.Name,
		RoomType:   b.RoomType,
		PriceCents: b.PriceCents,
		Currency:   b.Currency,
		Capacity:   b.Capacity,
		TotalUnits: b.TotalUnits,
		Available:  b.Available,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Fluent builder methods
func (b *RoomBuilder) WithType(roomType string) *RoomBuilder {
	b.RoomType = roomType
	return b
}

func (b *RoomBuilder) WithPrice(cents int64) *RoomBuilder {
	b.PriceCents = cents
	return b
}

func (b *RoomBuilder) WithUnits(units int) *RoomBuilder {
	b.TotalUnits = units
	return b
}

func (b *RoomBuilder) AsUnavailable() *RoomBuilder {
	b.Available = false
	return b
}
