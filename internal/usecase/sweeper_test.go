//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/usecase"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSweeper(resRepo *MockReservationRepository, pub *MockEventPublisher, now time.Time) *usecase.ExpirySweeper {
	return usecase.NewExpirySweeper(resRepo, pub, clock.NewMockClock(now), config.SweeperConfig{
		Interval:   time.Minute,
		PendingTTL: 30 * time.Minute,
	})
}

func TestSweepOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-30 * time.Minute)

	t.Run("expires stale rows and publishes one event each", func(t *testing.T) {
		expired := []readmodel.ExpiredReservationRM{
			{ID: uuid.New(), UserID: uuid.New(), RoomID: uuid.New()},
			{ID: uuid.New(), UserID: uuid.New(), RoomID: uuid.New()},
		}

		resRepo := new(MockReservationRepository)
		resRepo.On("ExpirePending", ctx, cutoff, "payment window expired", now).Return(expired, nil)

		pub := new(MockEventPublisher)
		for _, rm := range expired {
			pub.On("Publish", ctx, usecase.ReservationEvent{
				Type:          usecase.EventReservationExpired,
				ReservationID: rm.ID,
				UserID:        rm.UserID,
				RoomID:        rm.RoomID,
				OccurredAt:    now,
			}).Return(nil).Once()
		}

		count, err := newSweeper(resRepo, pub, now).SweepOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		pub.AssertExpectations(t)
	})

	t.Run("nothing to expire", func(t *testing.T) {
		resRepo := new(MockReservationRepository)
		resRepo.On("ExpirePending", ctx, cutoff, "payment window expired", now).
			Return([]readmodel.ExpiredReservationRM{}, nil)

		pub := new(MockEventPublisher)

		count, err := newSweeper(resRepo, pub, now).SweepOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
		pub.AssertNotCalled(t, "Publish")
	})

	t.Run("publish failure does not fail the sweep", func(t *testing.T) {
		expired := []readmodel.ExpiredReservationRM{
			{ID: uuid.New(), UserID: uuid.New(), RoomID: uuid.New()},
		}

		resRepo := new(MockReservationRepository)
		resRepo.On("ExpirePending", ctx, cutoff, "payment window expired", now).Return(expired, nil)

		pub := new(MockEventPublisher)
		pub.On("Publish", ctx, mock.Anything).Return(assert.AnError)

		count, err := newSweeper(resRepo, pub, now).SweepOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("repository failure surfaces", func(t *testing.T) {
		resRepo := new(MockReservationRepository)
		resRepo.On("ExpirePending", ctx, cutoff, "payment window expired", now).
			Return(nil, assert.AnError)

		_, err := newSweeper(resRepo, new(MockEventPublisher), now).SweepOnce(ctx)
		assert.Error(t, err)
	})
}
