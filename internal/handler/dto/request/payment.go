package request

import (
	"github.com/google/uuid"
)

type CreateIntentRequest struct {
	ReservationID uuid.UUID `json:"reservationId" binding:"required"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}

type RefundRequest struct {
	// Zero refunds the full remaining balance.
	AmountCents int64  `json:"amountCents" binding:"gte=0"`
	Reason      string `json:"reason"`
}
