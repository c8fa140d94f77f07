package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus     = errors.New("invalid transaction status")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrNotRefundable     = errors.New("transaction is not refundable")
	ErrRefundExceedsPaid = errors.New("refund exceeds remaining paid amount")
	ErrAlreadySettled    = errors.New("transaction is already settled")
)

// Transaction records one payment intent for a reservation. A reservation
// has at most one non-FAILED transaction at any time.
type Transaction struct {
	id            uuid.UUID
	reservationID uuid.UUID
	userID        uuid.UUID
	amountCents   int64
	refundedCents int64
	currency      string
	status        Status
	intentID      string
	clientSecret  string
	refundReason  string
	refundedAt    *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewTransaction(reservationID, userID uuid.UUID, amountCents int64, currency, intentID, clientSecret string) (*Transaction, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	return &Transaction{
		id:            uuid.New(),
		reservationID: reservationID,
		userID:        userID,
		amountCents:   amountCents,
		currency:      currency,
		status:        StatusPending,
		intentID:      intentID,
		clientSecret:  clientSecret,
	}, nil
}

func ReconstructTransaction(
	id, reservationID, userID uuid.UUID,
	amountCents, refundedCents int64,
	currency string,
	status Status,
	intentID, clientSecret, refundReason string,
	refundedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Transaction {
	return &Transaction{
		id:            id,
		reservationID: reservationID,
		userID:        userID,
		amountCents:   amountCents,
		refundedCents: refundedCents,
		currency:      currency,
		status:        status,
		intentID:      intentID,
		clientSecret:  clientSecret,
		refundReason:  refundReason,
		refundedAt:    refundedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (t *Transaction) MarkSucceeded() error {
	if t.status.IsSettled() {
		return ErrAlreadySettled
	}
	if t.status != StatusPending {
		return ErrInvalidStatus
	}
	t.status = StatusSucceeded
	return nil
}

func (t *Transaction) MarkFailed() error {
	if t.status != StatusPending {
		return ErrInvalidStatus
	}
	t.status = StatusFailed
	return nil
}

// ApplyRefund records a refund of amountCents. A zero amount refunds the
// full remaining balance.
func (t *Transaction) ApplyRefund(amountCents int64, reason string, now time.Time) error {
	if !t.status.IsRefundable() {
		return ErrNotRefundable
	}

	remaining := t.amountCents - t.refundedCents
	if amountCents == 0 {
		amountCents = remaining
	}
	if amountCents < 0 || amountCents > remaining {
		return ErrRefundExceedsPaid
	}

	t.refundedCents += amountCents
	t.refundReason = reason
	t.refundedAt = &now
	if t.refundedCents >= t.amountCents {
		t.status = StatusRefunded
	} else {
		t.status = StatusPartiallyRefunded
	}
	return nil
}

func (t *Transaction) RemainingCents() int64 {
	return t.amountCents - t.refundedCents
}

func (t *Transaction) ID() uuid.UUID            { return t.id }
func (t *Transaction) ReservationID() uuid.UUID { return t.reservationID }
func (t *Transaction) UserID() uuid.UUID        { return t.userID }
func (t *Transaction) AmountCents() int64       { return t.amountCents }
func (t *Transaction) RefundedCents() int64     { return t.refundedCents }
func (t *Transaction) Currency() string         { return t.currency }
func (t *Transaction) Status() Status           { return t.status }
func (t *Transaction) IntentID() string         { return t.intentID }
func (t *Transaction) ClientSecret() string     { return t.clientSecret }
func (t *Transaction) RefundReason() string     { return t.refundReason }
func (t *Transaction) RefundedAt() *time.Time   { return t.refundedAt }
func (t *Transaction) CreatedAt() time.Time     { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time     { return t.updatedAt }
