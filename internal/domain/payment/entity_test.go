//go:build unit

package payment_test

import (
	"testing"
	"time"

	"stayhub/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingTransaction(t *testing.T) *payment.Transaction {
	t.Helper()
	tx, err := payment.NewTransaction(uuid.New(), uuid.New(), 30000, "usd", "pi_test_123", "pi_test_123_secret")
	require.NoError(t, err)
	return tx
}

func newSucceededTransaction(t *testing.T) *payment.Transaction {
	t.Helper()
	tx := newPendingTransaction(t)
	require.NoError(t, tx.MarkSucceeded())
	return tx
}

func TestNewTransaction(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		tx := newPendingTransaction(t)
		assert.Equal(t, payment.StatusPending, tx.Status())
		assert.Equal(t, int64(30000), tx.AmountCents())
		assert.Equal(t, int64(0), tx.RefundedCents())
		assert.False(t, tx.Status().IsSettled())
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		_, err := payment.NewTransaction(uuid.New(), uuid.New(), 0, "usd", "pi", "sec")
		assert.ErrorIs(t, err, payment.ErrInvalidAmount)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := payment.NewTransaction(uuid.New(), uuid.New(), -100, "usd", "pi", "sec")
		assert.ErrorIs(t, err, payment.ErrInvalidAmount)
	})
}

func TestMarkSucceeded(t *testing.T) {
	tx := newPendingTransaction(t)

	require.NoError(t, tx.MarkSucceeded())
	assert.Equal(t, payment.StatusSucceeded, tx.Status())
	assert.True(t, tx.Status().IsSettled())

	assert.ErrorIs(t, tx.MarkSucceeded(), payment.ErrAlreadySettled)
}

func TestMarkFailed(t *testing.T) {
	tx := newPendingTransaction(t)
	require.NoError(t, tx.MarkFailed())
	assert.Equal(t, payment.StatusFailed, tx.Status())

	assert.ErrorIs(t, tx.MarkFailed(), payment.ErrInvalidStatus)
}

func TestApplyRefund(t *testing.T) {
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)

	t.Run("full refund by explicit amount", func(t *testing.T) {
		tx := newSucceededTransaction(t)
		require.NoError(t, tx.ApplyRefund(30000, "guest cancelled", now))

		assert.Equal(t, payment.StatusRefunded, tx.Status())
		assert.Equal(t, int64(0), tx.RemainingCents())
		assert.Equal(t, "guest cancelled", tx.RefundReason())
		require.NotNil(t, tx.RefundedAt())
	})

	t.Run("zero amount refunds full remaining balance", func(t *testing.T) {
		tx := newSucceededTransaction(t)
		require.NoError(t, tx.ApplyRefund(0, "", now))
		assert.Equal(t, payment.StatusRefunded, tx.Status())
		assert.Equal(t, int64(30000), tx.RefundedCents())
	})

	t.Run("partial refunds accumulate to full", func(t *testing.T) {
		tx := newSucceededTransaction(t)

		require.NoError(t, tx.ApplyRefund(10000, "one night comped", now))
		assert.Equal(t, payment.StatusPartiallyRefunded, tx.Status())
		assert.Equal(t, int64(20000), tx.RemainingCents())

		require.NoError(t, tx.ApplyRefund(20000, "remainder", now))
		assert.Equal(t, payment.StatusRefunded, tx.Status())
		assert.Equal(t, int64(0), tx.RemainingCents())
	})

	t.Run("refund exceeding remaining rejected", func(t *testing.T) {
		tx := newSucceededTransaction(t)
		require.NoError(t, tx.ApplyRefund(25000, "", now))
		assert.ErrorIs(t, tx.ApplyRefund(10000, "", now), payment.ErrRefundExceedsPaid)
	})

	t.Run("pending transaction not refundable", func(t *testing.T) {
		tx := newPendingTransaction(t)
		assert.ErrorIs(t, tx.ApplyRefund(100, "", now), payment.ErrNotRefundable)
	})

	t.Run("fully refunded transaction not refundable again", func(t *testing.T) {
		tx := newSucceededTransaction(t)
		require.NoError(t, tx.ApplyRefund(0, "", now))
		assert.ErrorIs(t, tx.ApplyRefund(1, "", now), payment.ErrNotRefundable)
	})
}

func TestStatusIsSettled(t *testing.T) {
	assert.False(t, payment.StatusPending.IsSettled())
	assert.False(t, payment.StatusFailed.IsSettled())
	assert.True(t, payment.StatusSucceeded.IsSettled())
	assert.True(t, payment.StatusRefunded.IsSettled())
	assert.True(t, payment.StatusPartiallyRefunded.IsSettled())
}
