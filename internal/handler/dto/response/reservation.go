package response

import (
	"time"

	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type ReservationResponse struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"userId"`
	UserEmail       string     `json:"userEmail,omitempty"`
	RoomID          uuid.UUID  `json:"roomId"`
	RoomName        string     `json:"roomName"`
	RoomType        string     `json:"roomType"`
	CheckIn         string     `json:"checkIn"`
	CheckOut        string     `json:"checkOut"`
	Guests          int        `json:"guests"`
	TotalCents      int64      `json:"totalCents"`
	Status          string     `json:"status"`
	SpecialRequests string     `json:"specialRequests,omitempty"`
	CancelReason    string     `json:"cancelReason,omitempty"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type ReservationListResponse struct {
	ID         uuid.UUID `json:"id"`
	RoomID     uuid.UUID `json:"roomId"`
	RoomName   string    `json:"roomName"`
	CheckIn    string    `json:"checkIn"`
	CheckOut   string    `json:"checkOut"`
	Guests     int       `json:"guests"`
	TotalCents int64     `json:"totalCents"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromReservationRM(rm *readmodel.ReservationRM) *ReservationResponse {
	return &ReservationResponse{
		ID:              rm.ID,
		UserID:          rm.UserID,
		UserEmail:       rm.UserEmail,
		RoomID:          rm.RoomID,
		RoomName:        rm.RoomName,
		RoomType:        rm.RoomType,
		CheckIn:         rm.CheckIn.Format(dateLayout),
		CheckOut:        rm.CheckOut.Format(dateLayout),
		Guests:          rm.Guests,
		TotalCents:      rm.TotalCents,
		Status:          rm.Status,
		SpecialRequests: rm.SpecialRequests,
		CancelReason:    rm.CancelReason,
		CancelledAt:     rm.CancelledAt,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}

func FromReservationRMs(rms []readmodel.ReservationRM) []*ReservationResponse {
	result := make([]*ReservationResponse, len(rms))
	for i := range rms {
		result[i] = FromReservationRM(&rms[i])
	}
	return result
}

func FromReservationListRM(rm *readmodel.ReservationListRM) *ReservationListResponse {
	return &ReservationListResponse{
		ID:         rm.ID,
		RoomID:     rm.RoomID,
		RoomName:   rm.RoomName,
		CheckIn:    rm.CheckIn.Format(dateLayout),
		CheckOut:   rm.CheckOut.Format(dateLayout),
		Guests:     rm.Guests,
		TotalCents: rm.TotalCents,
		Status:     rm.Status,
		CreatedAt:  rm.CreatedAt,
	}
}
