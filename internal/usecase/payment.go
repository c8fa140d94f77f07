package usecase

import (
	"context"
	"log/slog"

	"stayhub/internal/domain/payment"
	"stayhub/internal/domain/reservation"
	"stayhub/internal/domain/user"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

var (
	ErrTransactionNotFound      = errs.New("transaction not found")
	ErrPaymentGateway           = errs.New("payment gateway request failed")
	ErrInvalidPaymentState      = errs.New("reservation is not payable in its current state")
	ErrPaymentNotCompleted      = errs.New("payment has not completed at the gateway")
	ErrInvalidPaymentInput      = errs.New("invalid payment data")
	ErrTransactionNotRefundable = errs.New("transaction cannot be refunded")
)

// GatewayIntent is the provider-neutral view of a payment intent.
type GatewayIntent struct {
	IntentID     string
	ClientSecret string
	Status       string
}

const (
	GatewayIntentSucceeded = "succeeded"
	GatewayIntentCanceled  = "canceled"
)

type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string, reservationID, userID uuid.UUID) (*GatewayIntent, error)
	GetIntent(ctx context.Context, intentID string) (*GatewayIntent, error)
	Refund(ctx context.Context, intentID string, amountCents int64) error
}

type TransactionRepository interface {
	Create(ctx context.Context, tx db.DBTX, t *payment.Transaction) error
	Update(ctx context.Context, tx db.DBTX, t *payment.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*payment.Transaction, error)
	FindByIntentID(ctx context.Context, intentID string) (*payment.Transaction, error)
	// FindActiveByReservation returns the reservation's single non-FAILED
	// transaction, or a NOT_FOUND kind when none exists.
	FindActiveByReservation(ctx context.Context, reservationID uuid.UUID) (*payment.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]readmodel.TransactionRM, error)
	ListAll(ctx context.Context) ([]readmodel.TransactionRM, error)
}

type PaymentIntentResult struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	ClientSecret  string    `json:"client_secret"`
	AmountCents   int64     `json:"amount_cents"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
}

type PaymentUseCase interface {
	CreateIntent(ctx context.Context, reservationID, requesterID uuid.UUID) (*PaymentIntentResult, error)
	Confirm(ctx context.Context, intentID string, requesterID uuid.UUID) (*readmodel.TransactionRM, error)
	Refund(ctx context.Context, transactionID uuid.UUID, amountCents int64, reason string) (*readmodel.TransactionRM, error)
	GetByID(ctx context.Context, id, requesterID uuid.UUID, role user.Role) (*readmodel.TransactionRM, error)
	History(ctx context.Context, userID uuid.UUID) ([]readmodel.TransactionRM, error)
	ListAll(ctx context.Context) ([]readmodel.TransactionRM, error)
}

type paymentUseCaseImpl struct {
	transactionRepo TransactionRepository
	reservationRepo ReservationRepository
	gateway         PaymentGateway
	publisher       EventPublisher
	clock           clock.Clock
}

func NewPaymentUseCase(
	transactionRepo TransactionRepository,
	reservationRepo ReservationRepository,
	gateway PaymentGateway,
	publisher EventPublisher,
	clk clock.Clock,
) PaymentUseCase {
	return &paymentUseCaseImpl{
		transactionRepo: transactionRepo,
		reservationRepo: reservationRepo,
		gateway:         gateway,
		publisher:       publisher,
		clock:           clk,
	}
}

func (u *paymentUseCaseImpl) CreateIntent(ctx context.Context, reservationID, requesterID uuid.UUID) (*PaymentIntentResult, error) {
	resEntity, err := u.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	if resEntity.UserID() != requesterID {
		return nil, ErrForbidden
	}
	if resEntity.Status() != reservation.StatusPending {
		return nil, ErrInvalidPaymentState
	}

	existing, err := u.transactionRepo.FindActiveByReservation(ctx, reservationID)
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}
	if existing != nil {
		// One open intent per reservation: replay the existing one instead
		// of charging twice.
		if existing.Status() != payment.StatusPending {
			return nil, ErrInvalidPaymentState
		}
		return intentResult(existing), nil
	}

	intent, err := u.gateway.CreateIntent(ctx, resEntity.Total().Cents(), "usd", reservationID, requesterID)
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentGateway)
	}

	txEntity, err := payment.NewTransaction(reservationID, requesterID, resEntity.Total().Cents(), "usd", intent.IntentID, intent.ClientSecret)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidPaymentInput)
	}

	if err := u.transactionRepo.Create(ctx, nil, txEntity); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			// Lost the race to a concurrent request for the same
			// reservation: surface the winner's intent.
			winner, err := u.transactionRepo.FindActiveByReservation(ctx, reservationID)
			if err != nil {
				return nil, err
			}
			if winner.Status() != payment.StatusPending {
				return nil, ErrInvalidPaymentState
			}
			return intentResult(winner), nil
		}
		return nil, err
	}

	return intentResult(txEntity), nil
}

func (u *paymentUseCaseImpl) Confirm(ctx context.Context, intentID string, requesterID uuid.UUID) (*readmodel.TransactionRM, error) {
	txEntity, err := u.transactionRepo.FindByIntentID(ctx, intentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	if txEntity.UserID() != requesterID {
		return nil, ErrForbidden
	}

	if txEntity.Status().IsSettled() {
		return toTransactionRM(txEntity), nil
	}

	// Never trust the client's word for the charge: re-read the intent from
	// the gateway before moving any state.
	intent, err := u.gateway.GetIntent(ctx, intentID)
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentGateway)
	}
	switch intent.Status {
	case GatewayIntentSucceeded:
	case GatewayIntentCanceled:
		// A canceled intent can never complete. Fail the transaction so the
		// unique-active-transaction slot frees up and a fresh intent can be
		// opened for the still-pending reservation.
		if err := txEntity.MarkFailed(); err != nil {
			return nil, errs.Mark(err, ErrInvalidPaymentState)
		}
		if err := u.transactionRepo.Update(ctx, nil, txEntity); err != nil {
			return nil, err
		}
		return nil, ErrPaymentNotCompleted
	default:
		return nil, ErrPaymentNotCompleted
	}

	if err := txEntity.MarkSucceeded(); err != nil {
		return nil, errs.Mark(err, ErrInvalidPaymentState)
	}

	// The gateway already took the money; record the settlement before
	// touching the reservation so the charge can never go missing.
	if err := u.transactionRepo.Update(ctx, nil, txEntity); err != nil {
		return nil, err
	}

	resEntity, err := u.reservationRepo.FindByID(ctx, txEntity.ReservationID())
	if err != nil {
		return nil, err
	}

	if resEntity.Status() != reservation.StatusConfirmed {
		ok, err := u.reservationRepo.UpdateStatusCAS(ctx, nil, resEntity.ID(), reservation.StatusPending, reservation.StatusConfirmed, nil, nil)
		if err != nil {
			return nil, err
		}
		if !ok {
			// The reservation left PENDING (guest cancel or expiry sweep)
			// while the customer was paying. The settlement stands; the
			// charge needs a staff refund.
			slog.Error("payment settled for a reservation that is no longer pending; refund required",
				"transaction_id", txEntity.ID(),
				"reservation_id", resEntity.ID())
			return toTransactionRM(txEntity), nil
		}

		u.publishEvent(ctx, ReservationEvent{
			Type:          EventReservationConfirmed,
			ReservationID: resEntity.ID(),
			UserID:        resEntity.UserID(),
			RoomID:        resEntity.RoomID(),
			OccurredAt:    u.clock.Now(),
		})
	}

	return toTransactionRM(txEntity), nil
}

func (u *paymentUseCaseImpl) Refund(ctx context.Context, transactionID uuid.UUID, amountCents int64, reason string) (*readmodel.TransactionRM, error) {
	txEntity, err := u.transactionRepo.FindByID(ctx, transactionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	// Only a settled charge can be refunded; reject locally before issuing
	// any gateway I/O.
	if !txEntity.Status().IsRefundable() {
		return nil, ErrTransactionNotRefundable
	}

	if amountCents < 0 || amountCents > txEntity.RemainingCents() {
		return nil, ErrInvalidPaymentInput
	}

	refundAmount := amountCents
	if refundAmount == 0 {
		refundAmount = txEntity.RemainingCents()
	}

	if err := u.gateway.Refund(ctx, txEntity.IntentID(), refundAmount); err != nil {
		return nil, errs.Mark(err, ErrPaymentGateway)
	}

	if err := txEntity.ApplyRefund(refundAmount, reason, u.clock.Now()); err != nil {
		// The gateway accepted the refund; a state mismatch here means the
		// row changed underneath us and must be reconciled from the ledger.
		slog.Error("refund accepted by gateway but rejected by domain state",
			"transaction_id", transactionID, "error", err)
		return nil, errs.Mark(err, ErrTransactionNotRefundable)
	}

	if err := u.transactionRepo.Update(ctx, nil, txEntity); err != nil {
		return nil, err
	}

	return toTransactionRM(txEntity), nil
}

func (u *paymentUseCaseImpl) GetByID(ctx context.Context, id, requesterID uuid.UUID, role user.Role) (*readmodel.TransactionRM, error) {
	txEntity, err := u.transactionRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	if txEntity.UserID() != requesterID && !role.IsStaff() {
		return nil, ErrForbidden
	}

	return toTransactionRM(txEntity), nil
}

func (u *paymentUseCaseImpl) History(ctx context.Context, userID uuid.UUID) ([]readmodel.TransactionRM, error) {
	return u.transactionRepo.ListByUser(ctx, userID)
}

func (u *paymentUseCaseImpl) ListAll(ctx context.Context) ([]readmodel.TransactionRM, error) {
	return u.transactionRepo.ListAll(ctx)
}

func (u *paymentUseCaseImpl) publishEvent(ctx context.Context, event ReservationEvent) {
	if err := u.publisher.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish reservation event",
			"type", event.Type,
			"reservation_id", event.ReservationID,
			"error", err)
	}
}

func intentResult(t *payment.Transaction) *PaymentIntentResult {
	return &PaymentIntentResult{
		TransactionID: t.ID(),
		ClientSecret:  t.ClientSecret(),
		AmountCents:   t.AmountCents(),
		Currency:      t.Currency(),
		Status:        t.Status().String(),
	}
}

func toTransactionRM(t *payment.Transaction) *readmodel.TransactionRM {
	return &readmodel.TransactionRM{
		ID:            t.ID(),
		ReservationID: t.ReservationID(),
		UserID:        t.UserID(),
		AmountCents:   t.AmountCents(),
		RefundedCents: t.RefundedCents(),
		Currency:      t.Currency(),
		Status:        t.Status().String(),
		RefundReason:  t.RefundReason(),
		RefundedAt:    t.RefundedAt(),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}
}
