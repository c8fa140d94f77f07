package readmodel

import (
	"time"

	"github.com/google/uuid"
)

type ReservationRM struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	UserEmail       string     `json:"user_email,omitempty"`
	RoomID          uuid.UUID  `json:"room_id"`
	RoomName        string     `json:"room_name"`
	RoomType        string     `json:"room_type"`
	CheckIn         time.Time  `json:"check_in"`
	CheckOut        time.Time  `json:"check_out"`
	Guests          int        `json:"guests"`
	TotalCents      int64      `json:"total_cents"`
	Status          string     `json:"status"`
	SpecialRequests string     `json:"special_requests,omitempty"`
	CancelReason    string     `json:"cancel_reason,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type ReservationListRM struct {
	ID         uuid.UUID `json:"id"`
	RoomID     uuid.UUID `json:"room_id"`
	RoomName   string    `json:"room_name"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Guests     int       `json:"guests"`
	TotalCents int64     `json:"total_cents"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// ExpiredReservationRM identifies a pending reservation released by the
// expiry sweep, with enough context to publish a cancellation event.
type ExpiredReservationRM struct {
	ID     uuid.UUID
	UserID uuid.UUID
	RoomID uuid.UUID
}
