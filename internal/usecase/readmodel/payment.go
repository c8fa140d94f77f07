package readmodel

import (
	"time"

	"github.com/google/uuid"
)

type TransactionRM struct {
	ID            uuid.UUID  `json:"id"`
	ReservationID uuid.UUID  `json:"reservation_id"`
	UserID        uuid.UUID  `json:"user_id"`
	AmountCents   int64      `json:"amount_cents"`
	RefundedCents int64      `json:"refunded_cents,omitempty"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	RefundReason  string     `json:"refund_reason,omitempty"`
	RefundedAt    *time.Time `json:"refunded_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
