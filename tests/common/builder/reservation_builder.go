//go:build unit || e2e

package builder

import (
	"time"

	reqdto "stayhub/internal/handler/dto/request"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	UserID     uuid.UUID
	RoomID     uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
	TotalCents int64
	Status     string
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		UserID:     uuid.New(),
		RoomID:     uuid.New(),
		CheckIn:    time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
		Guests:     2,
		TotalCents: 36000,
		Status:     "PENDING",
	}
}

func (b *ReservationBuilder) BuildReadModel() *readmodel.ReservationRM {
	now := time.Now().UTC()
	return &readmodel.ReservationRM{
		ID:         uuid.New(),
		UserID:     b.UserID,
		RoomID:     b.RoomID,
		RoomName:   "Ocean Standard",
		RoomType:   "STANDARD",
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Guests:     b.Guests,
		TotalCents: b.TotalCents,
		Status:     b.Status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (b *ReservationBuilder) BuildCreateDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		RoomID:   b.RoomID,
		CheckIn:  b.CheckIn.Format("2006-01-02"),
		CheckOut: b.CheckOut.Format("2006-01-02"),
		Guests:   b.Guests,
	}
}

// Fluent builder methods
func (b *ReservationBuilder) WithUser(id uuid.UUID) *ReservationBuilder {
	b.UserID = id
	return b
}

func (b *ReservationBuilder) WithRoom(id uuid.UUID) *ReservationBuilder {
	b.RoomID = id
	return b
}

func (b *ReservationBuilder) WithStatus(status string) *ReservationBuilder {
	b.Status = status
	return b
}

func (b *ReservationBuilder) WithStay(checkIn, checkOut time.Time) *ReservationBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}
