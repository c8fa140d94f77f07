package request

import (
	"time"

	"stayhub/internal/usecase"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

type CreateReservationRequest struct {
	RoomID          uuid.UUID `json:"roomId" binding:"required"`
	CheckIn         string    `json:"checkIn" binding:"required,datetime=2006-01-02"`
	CheckOut        string    `json:"checkOut" binding:"required,datetime=2006-01-02"`
	Guests          int       `json:"guests" binding:"required,gte=1"`
	SpecialRequests string    `json:"specialRequests"`
}

func (r *CreateReservationRequest) ToInput() (usecase.CreateReservationInput, error) {
	checkIn, err := ParseDate(r.CheckIn)
	if err != nil {
		return usecase.CreateReservationInput{}, err
	}
	checkOut, err := ParseDate(r.CheckOut)
	if err != nil {
		return usecase.CreateReservationInput{}, err
	}

	return usecase.CreateReservationInput{
		RoomID:          r.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          r.Guests,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

type UpdateReservationRequest struct {
	CheckIn  string `json:"checkIn" binding:"required,datetime=2006-01-02"`
	CheckOut string `json:"checkOut" binding:"required,datetime=2006-01-02"`
	Guests   int    `json:"guests" binding:"required,gte=1"`
}

func (r *UpdateReservationRequest) ToInput() (usecase.UpdateReservationInput, error) {
	checkIn, err := ParseDate(r.CheckIn)
	if err != nil {
		return usecase.UpdateReservationInput{}, err
	}
	checkOut, err := ParseDate(r.CheckOut)
	if err != nil {
		return usecase.UpdateReservationInput{}, err
	}

	return usecase.UpdateReservationInput{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   r.Guests,
	}, nil
}

type CancelReservationRequest struct {
	Reason string `json:"reason"`
}
