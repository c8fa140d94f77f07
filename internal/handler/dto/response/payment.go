package response

import (
	"time"

	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type TransactionResponse struct {
	ID            uuid.UUID  `json:"id"`
	ReservationID uuid.UUID  `json:"reservationId"`
	UserID        uuid.UUID  `json:"userId"`
	AmountCents   int64      `json:"amountCents"`
	RefundedCents int64      `json:"refundedCents,omitempty"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	RefundReason  string     `json:"refundReason,omitempty"`
	RefundedAt    *time.Time `json:"refundedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func FromTransactionRM(rm *readmodel.TransactionRM) *TransactionResponse {
	return &TransactionResponse{
		ID:            rm.ID,
		ReservationID: rm.ReservationID,
		UserID:        rm.UserID,
		AmountCents:   rm.AmountCents,
		RefundedCents: rm.RefundedCents,
		Currency:      rm.Currency,
		Status:        rm.Status,
		RefundReason:  rm.RefundReason,
		RefundedAt:    rm.RefundedAt,
		CreatedAt:     rm.CreatedAt,
		UpdatedAt:     rm.UpdatedAt,
	}
}

func FromTransactionRMs(rms []readmodel.TransactionRM) []*TransactionResponse {
	result := make([]*TransactionResponse, len(rms))
	for i := range rms {
		result[i] = FromTransactionRM(&rms[i])
	}
	return result
}
