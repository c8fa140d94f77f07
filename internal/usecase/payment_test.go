//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"stayhub/internal/domain/payment"
	"stayhub/internal/domain/reservation"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingReservation(t *testing.T, userID uuid.UUID) *reservation.Reservation {
	t.Helper()
	period, err := reservation.NewStayPeriod(
		time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	r, err := reservation.NewReservation(
		reservation.RoomSpec{ID: uuid.New(), PriceCents: 10000, Capacity: 2},
		userID, period, 2, "", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return r
}

func newPaymentUseCase(
	txRepo *MockTransactionRepository,
	resRepo *MockReservationRepository,
	gw *MockPaymentGateway,
	pub *MockEventPublisher,
) usecase.PaymentUseCase {
	clk := clock.NewMockClock(time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC))
	return usecase.NewPaymentUseCase(txRepo, resRepo, gw, pub, clk)
}

func TestCreateIntent(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("opens a new intent for a pending reservation", func(t *testing.T) {
		res := pendingReservation(t, userID)

		resRepo := new(MockReservationRepository)
		resRepo.On("FindByID", ctx, res.ID()).Return(res, nil)

		txRepo := new(MockTransactionRepository)
		txRepo.On("FindActiveByReservation", ctx, res.ID()).Return(nil, notFoundErr())
		txRepo.On("Create", ctx, nil, mock.AnythingOfType("*payment.Transaction")).Return(nil)

		gw := new(MockPaymentGateway)
		gw.On("CreateIntent", ctx, res.Total().Cents(), "usd", res.ID(), userID).
			Return(&usecase.GatewayIntent{IntentID: "pi_1", ClientSecret: "pi_1_secret", Status: "requires_payment_method"}, nil)

		uc := newPaymentUseCase(txRepo, resRepo, gw, new(MockEventPublisher))

		result, err := uc.CreateIntent(ctx, res.ID(), userID)
		require.NoError(t, err)
		assert.Equal(t, "pi_1_secret", result.ClientSecret)
		assert.Equal(t, res.Total().Cents(), result.AmountCents)
		assert.Equal(t, "PENDING", result.Status)
		txRepo.AssertExpectations(t)
	})

	t.Run("replays an existing pending intent instead of charging twice", func(t *testing.T) {
		res := pendingReservation(t, userID)
		existing, err := payment.NewTransaction(res.ID(), userID, res.Total().Cents(), "usd", "pi_old", "pi_old_secret")
		require.NoError(t, err)

		resRepo := new(MockReservationRepository)
		resRepo.On("FindByID", ctx, res.ID()).Return(res, nil)

		txRepo := new(MockTransactionRepository)
		txRepo.On("FindActiveByReservation", ctx, res.ID()).Return(existing, nil)

		gw := new(MockPaymentGateway)

		uc := newPaymentUseCase(txRepo, resRepo, gw, new(MockEventPublisher))

		result, err := uc.CreateIntent(ctx, res.ID(), userID)
		require.NoError(t, err)
		assert.Equal(t, existing.ID(), result.TransactionID)
		assert.Equal(t, "pi_old_secret", result.ClientSecret)
		gw.AssertNotCalled(t, "CreateIntent")
	})

	t.Run("only the owner can open an intent", func(t *testing.T) {
		res := pendingReservation(t, userID)

		resRepo := new(MockReservationRepository)
		resRepo.On("FindByID", ctx, res.ID()).Return(res, nil)

		uc := newPaymentUseCase(new(MockTransactionRepository), resRepo, new(MockPaymentGateway), new(MockEventPublisher))

		_, err := uc.CreateIntent(ctx, res.ID(), uuid.New())
		assert.ErrorIs(t, err, usecase.ErrForbidden)
	})

	t.Run("confirmed reservation is not payable", func(t *testing.T) {
		res := pendingReservation(t, userID)
		require.NoError(t, res.Confirm())

		resRepo := new(MockReservationRepository)
		resRepo.On("FindByID", ctx, res.ID()).Return(res, nil)

		uc := newPaymentUseCase(new(MockTransactionRepository), resRepo, new(MockPaymentGateway), new(MockEventPublisher))

		_, err := uc.CreateIntent(ctx, res.ID(), userID)
		assert.ErrorIs(t, err, usecase.ErrInvalidPaymentState)
	})

	t.Run("duplicate-key race surfaces the winner's intent", func(t *testing.T) {
		res := pendingReservation(t, userID)
		winner, err := payment.NewTransaction(res.ID(), userID, res.Total().Cents(), "usd", "pi_won", "pi_won_secret")
		require.NoError(t, err)

		resRepo := new(MockReservationRepository)
		resRepo.On("FindByID", ctx, res.ID()).Return(res, nil)

		txRepo := new(MockTransactionRepository)
		txRepo.On("FindActiveByReservation", ctx, res.ID()).Return(nil, notFoundErr()).Once()
		txRepo.On("Create", ctx, nil, mock.AnythingOfType("*payment.Transaction")).Return(duplicateKeyErr()).Once()
		txRepo.On("FindActiveByReservation", ctx, res.ID()).Return(winner, nil).Once()

		gw := new(MockPaymentGateway)
		gw.On("CreateIntent", ctx, res.Total().Cents(), "usd", res.ID(), userID).
			Return(&usecase.GatewayIntent{IntentID: "pi_lost", ClientSecret: "pi_lost_secret", Status: "requires_payment_method"}, nil)

		uc := newPaymentUseCase(txRepo, resRepo, gw, new(MockEventPublisher))

		result, err := uc.CreateIntent(ctx, res.ID(), userID)
		require.NoError(t, err)
		assert.Equal(t, winner.ID(), result.TransactionID)
		assert.Equal(t, "pi_won_secret", result.ClientSecret)
		txRepo.AssertExpectations(t)
	})

	t.Run("gateway failure surfaces as gateway error", func(t *testing.T) {
		res := pendingReservation(t, userID)

		resRepo := new(MockReservationRepository)
		resRepo.On("FindByID", ctx, res.ID()).Return(res, nil)

		txRepo := new(MockTransactionRepository)
		txRepo.On("FindActiveByReservation", ctx, res.ID()).Return(nil, notFoundErr())

		gw := new(MockPaymentGateway)
		gw.On("CreateIntent", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, assert.AnError)

		uc := newPaymentUseCase(txRepo, resRepo, gw, new(MockEventPublisher))

		_, err := uc.CreateIntent(ctx, res.ID(), userID)
		assert.ErrorIs(t, err, usecase.ErrPaymentGateway)
	})
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	openTx := func(t *testing.T, res *reservation.Reservation) *payment.Transaction {
		t.Helper()
		tx, err := payment.NewTransaction(res.ID(), userID, res.Total().Cents(), "usd", "pi_c", "pi_c_secret")
		require.NoError(t, err)
		return tx
	}

	t.Run("verified charge settles the transaction and confirms the reservation", func(t *testing.T) {
		res := pendingReservation(t, userID)
		tx := openTx(t, res)

		txRepo := new(MockTransactionRepository)
		txRepo.On("FindByIntentID", ctx, "pi_c").Return(tx, nil)
		txRepo.On("Update", ctx, nil, tx).Return(nil).Once()

		resRepo := new(MockReservationRepository)
		resRepo.On("FindByID", ctx, res.ID()).Return(res, nil)
		resRepo.On("UpdateStatusCAS", ctx, nil, res.ID(), reservation.StatusPending, reservation.StatusConfirmed, (*string)(nil), (*time.Time)(nil)).
			Return(true, nil)

		gw := new(MockPaymentGateway)
		gw.On("GetIntent", ctx, "pi_c").
			Return(&usecase.GatewayIntent{IntentID: "pi_c", Status: usecase.GatewayIntentSucceeded}, nil)

		pub := new(MockEventPublisher)
		pub.On("Publish", ctx, usecase.ReservationEvent{
			Type:          usecase.EventReservationConfirmed,
			ReservationID: res.ID(),
			UserID:        userID,
			RoomID:        res.RoomID(),
			OccurredAt:    now,
		}).Return(nil).Once()

		uc := newPaymentUseCase(txRepo, resRepo, gw, pub)

		rm, err := uc.Confirm(ctx, "pi_c", userID)
		require.NoError(t, err)
		assert.Equal(t, "SUCCEEDED", rm.Status)
		txRepo.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("confirming twice replays the settled transaction", func(t *testing.T) {
		res := pendingReservation(t, userID)
		tx := openTx(t, res)
		require.NoError(t, tx.MarkSucceeded())

		txRepo := new(MockTransactionRepository)
		txRepo.On("FindByIntentID", ctx, "pi_c").Return(tx, nil)

		gw := new(MockPaymentGateway)

		uc := newPaymentUseCase(txRepo, new(MockReservationRepository), gw, new(MockEventPublisher))

		rm, err := uc.Confirm(ctx, "pi_c", userID)
		require.NoError(t, err)
		assert.Equal(t, "SUCCEEDED", rm.Status)
		gw.AssertNotCalled(t, "GetIntent")
		txRepo.AssertNotCalled(t, "Update")
	})

	t.Run("unpaid intent is rejected and stays open", func(t *testing.T) {
		res := pendingReservation(t, userID)
		tx := openTx(t, res)

		txRepo := new(MockTransactionRepository)
		txRepo.On("FindByIntentID", ctx, "pi_c").Return(tx, nil)

		gw := new(MockPaymentGateway)
		gw.On("GetIntent", ctx, "pi_c").
			Return(&usecase.GatewayIntent{IntentID: "pi_c", Status: "requires_payment_method"}, nil)

		uc := newPaymentUseCase(txRepo, new(MockReservationRepository), gw, new(MockEventPublisher))

		_, err := uc.Confirm(ctx, "pi_c", userID)
		assert.ErrorIs(t, err, usecase.ErrPaymentNotCompleted)
		assert.Equal(t, payment.StatusPending, tx.Status())
		txRepo.AssertNotCalled(t, "Update")
	})

	t.Run("canceled intent fails the transaction so a fresh one can be opened", func(t *testing.T) {
		res := pendingReservation(t, userID)
		tx := openTx(t, res)

		txRepo := new(MockTransactionRepository)
		txRepo.On("FindByIntentID", ctx, "pi_c").Return(tx, nil)
		txRepo.On("Update", ctx, nil, tx).Return(nil).Once()

		gw := new(MockPaymentGateway)
		gw.On("GetIntent", ctx, "pi_c").
			Return(&usecase.GatewayIntent{IntentID: "pi_c", Status: usecase.GatewayIntentCanceled}, nil)

		resRepo := new(MockReservationRepository)
		resRepo.On("FindByID", ctx, res.ID()).Return(res, nil)

		uc := newPaymentUseCase(txRepo, resRepo, gw, new(MockEventPublisher))

		_, err := uc.Confirm(ctx, "pi_c", userID)
		assert.ErrorIs(t, err, usecase.ErrPaymentNotCompleted)
		assert.Equal(t, payment.StatusFailed, tx.Status())
		txRepo.AssertExpectations(t)

		// The failed row frees the active-transaction slot; a retry opens a
		// fresh intent instead of replaying the dead one.
		txRepo.On("FindActiveByReservation", ctx, res.ID()).Return(nil, notFoundErr())
		txRepo.On("Create", ctx, nil, mock.AnythingOfType("*payment.Transaction")).Return(nil)
		gw.On("CreateIntent", ctx, res.Total().Cents(), "usd", res.ID(), userID).
			Return(&usecase.GatewayIntent{IntentID: "pi_fresh", ClientSecret: "pi_fresh_secret", Status: "requires_payment_method"}, nil)

		result, err := uc.CreateIntent(ctx, res.ID(), userID)
		require.NoError(t, err)
		assert.Equal(t, "pi_fresh_secret", result.ClientSecret)
	})

	t.Run("settlement is recorded even when the reservation was cancelled meanwhile", func(t *testing.T) {
		res := pendingReservation(t, userID)
		tx := openTx(t, res)

		txRepo := new(MockTransactionRepository)
		txRepo.On("FindByIntentID", ctx, "pi_c").Return(tx, nil)
		txRepo.On("Update", ctx, nil, tx).Return(nil).Once()

		resRepo := new(MockReservationRepository)
		resRepo.On("FindByID", ctx, res.ID()).Return(res, nil)
		resRepo.On("UpdateStatusCAS", ctx, nil, res.ID(), reservation.StatusPending, reservation.StatusConfirmed, (*string)(nil), (*time.Time)(nil)).
			Return(false, nil)

		gw := new(MockPaymentGateway)
		gw.On("GetIntent", ctx, "pi_c").
			Return(&usecase.GatewayIntent{IntentID: "pi_c", Status: usecase.GatewayIntentSucceeded}, nil)

		pub := new(MockEventPublisher)

		uc := newPaymentUseCase(txRepo, resRepo, gw, pub)

		rm, err := uc.Confirm(ctx, "pi_c", userID)
		require.NoError(t, err)
		assert.Equal(t, "SUCCEEDED", rm.Status)
		txRepo.AssertExpectations(t)
		pub.AssertNotCalled(t, "Publish")
	})

	t.Run("only the payer can confirm", func(t *testing.T) {
		res := pendingReservation(t, userID)
		tx := openTx(t, res)

		txRepo := new(MockTransactionRepository)
		txRepo.On("FindByIntentID", ctx, "pi_c").Return(tx, nil)

		uc := newPaymentUseCase(txRepo, new(MockReservationRepository), new(MockPaymentGateway), new(MockEventPublisher))

		_, err := uc.Confirm(ctx, "pi_c", uuid.New())
		assert.ErrorIs(t, err, usecase.ErrForbidden)
	})
}

func TestRefund(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	succeededTx := func(t *testing.T) *payment.Transaction {
		t.Helper()
		tx, err := payment.NewTransaction(uuid.New(), userID, 30000, "usd", "pi_ref", "sec")
		require.NoError(t, err)
		require.NoError(t, tx.MarkSucceeded())
		return tx
	}

	t.Run("partial refund", func(t *testing.T) {
		tx := succeededTx(t)

		txRepo := new(MockTransactionRepository)
		txRepo.On("FindByID", ctx, tx.ID()).Return(tx, nil)
		txRepo.On("Update", ctx, nil, tx).Return(nil)

		gw := new(MockPaymentGateway)
		gw.On("Refund", ctx, "pi_ref", int64(10000)).Return(nil)

		uc := newPaymentUseCase(txRepo, new(MockReservationRepository), gw, new(MockEventPublisher))

		rm, err := uc.Refund(ctx, tx.ID(), 10000, "one night comped")
		require.NoError(t, err)
		assert.Equal(t, "PARTIALLY_REFUNDED", rm.Status)
		assert.Equal(t, int64(10000), rm.RefundedCents)
	})

	t.Run("zero amount refunds the full balance", func(t *testing.T) {
		tx := succeededTx(t)

		txRepo := new(MockTransactionRepository)
		txRepo.On("FindByID", ctx, tx.ID()).Return(tx, nil)
		txRepo.On("Update", ctx, nil, tx).Return(nil)

		gw := new(MockPaymentGateway)
		gw.On("Refund", ctx, "pi_ref", int64(30000)).Return(nil)

		uc := newPaymentUseCase(txRepo, new(MockReservationRepository), gw, new(MockEventPublisher))

		rm, err := uc.Refund(ctx, tx.ID(), 0, "")
		require.NoError(t, err)
		assert.Equal(t, "REFUNDED", rm.Status)
	})

	t.Run("amount above remaining rejected before hitting the gateway", func(t *testing.T) {
		tx := succeededTx(t)

		txRepo := new(MockTransactionRepository)
		txRepo.On("FindByID", ctx, tx.ID()).Return(tx, nil)

		gw := new(MockPaymentGateway)

		uc := newPaymentUseCase(txRepo, new(MockReservationRepository), gw, new(MockEventPublisher))

		_, err := uc.Refund(ctx, tx.ID(), 40000, "")
		assert.ErrorIs(t, err, usecase.ErrInvalidPaymentInput)
		gw.AssertNotCalled(t, "Refund")
	})

	t.Run("unsettled transaction is rejected before the gateway is called", func(t *testing.T) {
		tx, err := payment.NewTransaction(uuid.New(), userID, 30000, "usd", "pi_open", "sec")
		require.NoError(t, err)

		txRepo := new(MockTransactionRepository)
		txRepo.On("FindByID", ctx, tx.ID()).Return(tx, nil)

		gw := new(MockPaymentGateway)

		uc := newPaymentUseCase(txRepo, new(MockReservationRepository), gw, new(MockEventPublisher))

		_, err = uc.Refund(ctx, tx.ID(), 0, "")
		assert.ErrorIs(t, err, usecase.ErrTransactionNotRefundable)
		gw.AssertNotCalled(t, "Refund")
		txRepo.AssertNotCalled(t, "Update")
	})

	t.Run("gateway refusal keeps the transaction untouched", func(t *testing.T) {
		tx := succeededTx(t)

		txRepo := new(MockTransactionRepository)
		txRepo.On("FindByID", ctx, tx.ID()).Return(tx, nil)

		gw := new(MockPaymentGateway)
		gw.On("Refund", ctx, "pi_ref", int64(5000)).Return(assert.AnError)

		uc := newPaymentUseCase(txRepo, new(MockReservationRepository), gw, new(MockEventPublisher))

		_, err := uc.Refund(ctx, tx.ID(), 5000, "")
		assert.ErrorIs(t, err, usecase.ErrPaymentGateway)
		assert.Equal(t, payment.StatusSucceeded, tx.Status())
		txRepo.AssertNotCalled(t, "Update")
	})

	t.Run("unknown transaction", func(t *testing.T) {
		id := uuid.New()
		txRepo := new(MockTransactionRepository)
		txRepo.On("FindByID", ctx, id).Return(nil, notFoundErr())

		uc := newPaymentUseCase(txRepo, new(MockReservationRepository), new(MockPaymentGateway), new(MockEventPublisher))

		_, err := uc.Refund(ctx, id, 0, "")
		assert.ErrorIs(t, err, usecase.ErrTransactionNotFound)
	})
}
