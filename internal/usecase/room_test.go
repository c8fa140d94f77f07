//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"stayhub/internal/domain/room"
	"stayhub/internal/usecase"
	"stayhub/internal/usecase/readmodel"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRoom(t *testing.T, totalUnits int) *room.Room {
	t.Helper()
	r, err := room.NewRoom(room.NewRoomParams{
		Name:       "Ocean Standard",
		RoomType:   room.TypeStandard,
		PriceCents: 12000,
		Capacity:   2,
		TotalUnits: totalUnits,
	})
	require.NoError(t, err)
	return r
}

func stay(t *testing.T) (time.Time, time.Time) {
	t.Helper()
	return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
}

func TestRoomList(t *testing.T) {
	ctx := context.Background()

	t.Run("unfiltered list served from cache", func(t *testing.T) {
		cached := []readmodel.RoomRM{{ID: uuid.New(), Name: "Cached"}}
		cache := new(MockRoomCache)
		cache.On("GetRoomList", ctx).Return(cached, true)

		roomRepo := new(MockRoomRepository)
		uc := usecase.NewRoomUseCase(roomRepo, new(MockReservationRepository), cache)

		rms, err := uc.List(ctx, usecase.RoomFilter{})
		require.NoError(t, err)
		if diff := cmp.Diff(cached, rms); diff != "" {
			t.Errorf("room list mismatch (-want +got):\n%s", diff)
		}
		roomRepo.AssertNotCalled(t, "List")
	})

	t.Run("cache miss falls through and repopulates", func(t *testing.T) {
		fromDB := []readmodel.RoomRM{{ID: uuid.New(), Name: "Fresh"}}
		cache := new(MockRoomCache)
		cache.On("GetRoomList", ctx).Return(nil, false)
		cache.On("SetRoomList", ctx, fromDB).Return()

		roomRepo := new(MockRoomRepository)
		roomRepo.On("List", ctx, usecase.RoomFilter{}).Return(fromDB, nil)

		uc := usecase.NewRoomUseCase(roomRepo, new(MockReservationRepository), cache)

		rms, err := uc.List(ctx, usecase.RoomFilter{})
		require.NoError(t, err)
		if diff := cmp.Diff(fromDB, rms); diff != "" {
			t.Errorf("room list mismatch (-want +got):\n%s", diff)
		}
		cache.AssertExpectations(t)
	})

	t.Run("filtered list bypasses cache", func(t *testing.T) {
		roomType := "SUITE"
		filter := usecase.RoomFilter{RoomType: &roomType}

		cache := new(MockRoomCache)
		roomRepo := new(MockRoomRepository)
		roomRepo.On("List", ctx, filter).Return([]readmodel.RoomRM{}, nil)

		uc := usecase.NewRoomUseCase(roomRepo, new(MockReservationRepository), cache)

		_, err := uc.List(ctx, filter)
		require.NoError(t, err)
		cache.AssertNotCalled(t, "GetRoomList")
		cache.AssertNotCalled(t, "SetRoomList")
	})
}

func TestRoomGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		cache := new(MockRoomCache)
		cache.On("GetRoom", ctx, id).Return(nil, false)

		roomRepo := new(MockRoomRepository)
		roomRepo.On("FindByID", ctx, id).Return(nil, notFoundErr())

		uc := usecase.NewRoomUseCase(roomRepo, new(MockReservationRepository), cache)

		_, err := uc.GetByID(ctx, id)
		assert.ErrorIs(t, err, usecase.ErrRoomNotFound)
	})

	t.Run("miss populates cache", func(t *testing.T) {
		entity := newTestRoom(t, 5)
		cache := new(MockRoomCache)
		cache.On("GetRoom", ctx, entity.ID()).Return(nil, false)
		cache.On("SetRoom", ctx, mock.AnythingOfType("*readmodel.RoomRM")).Return()

		roomRepo := new(MockRoomRepository)
		roomRepo.On("FindByID", ctx, entity.ID()).Return(entity, nil)

		uc := usecase.NewRoomUseCase(roomRepo, new(MockReservationRepository), cache)

		rm, err := uc.GetByID(ctx, entity.ID())
		require.NoError(t, err)
		assert.Equal(t, entity.ID(), rm.ID)
		assert.Equal(t, 5, rm.TotalUnits)
		cache.AssertExpectations(t)
	})
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()
	checkIn, checkOut := stay(t)

	t.Run("remaining units computed from overlap count", func(t *testing.T) {
		entity := newTestRoom(t, 5)
		roomRepo := new(MockRoomRepository)
		roomRepo.On("FindByID", ctx, entity.ID()).Return(entity, nil)

		resRepo := new(MockReservationRepository)
		resRepo.On("CountOverlapping", ctx, nil, entity.ID(), mock.Anything, (*uuid.UUID)(nil)).Return(3, nil)

		uc := usecase.NewRoomUseCase(roomRepo, resRepo, new(MockRoomCache))

		result, err := uc.CheckAvailability(ctx, entity.ID(), checkIn, checkOut)
		require.NoError(t, err)
		assert.True(t, result.Available)
		assert.Equal(t, 2, result.RemainingUnits)
	})

	t.Run("fully booked", func(t *testing.T) {
		entity := newTestRoom(t, 2)
		roomRepo := new(MockRoomRepository)
		roomRepo.On("FindByID", ctx, entity.ID()).Return(entity, nil)

		resRepo := new(MockReservationRepository)
		resRepo.On("CountOverlapping", ctx, nil, entity.ID(), mock.Anything, (*uuid.UUID)(nil)).Return(2, nil)

		uc := usecase.NewRoomUseCase(roomRepo, resRepo, new(MockRoomCache))

		result, err := uc.CheckAvailability(ctx, entity.ID(), checkIn, checkOut)
		require.NoError(t, err)
		assert.False(t, result.Available)
		assert.Equal(t, 0, result.RemainingUnits)
	})

	t.Run("unavailable room reports zero without counting", func(t *testing.T) {
		entity := newTestRoom(t, 5)
		entity.SetAvailable(false)

		roomRepo := new(MockRoomRepository)
		roomRepo.On("FindByID", ctx, entity.ID()).Return(entity, nil)

		resRepo := new(MockReservationRepository)
		uc := usecase.NewRoomUseCase(roomRepo, resRepo, new(MockRoomCache))

		result, err := uc.CheckAvailability(ctx, entity.ID(), checkIn, checkOut)
		require.NoError(t, err)
		assert.False(t, result.Available)
		resRepo.AssertNotCalled(t, "CountOverlapping")
	})

	t.Run("invalid period", func(t *testing.T) {
		uc := usecase.NewRoomUseCase(new(MockRoomRepository), new(MockReservationRepository), new(MockRoomCache))
		_, err := uc.CheckAvailability(ctx, uuid.New(), checkOut, checkIn)
		assert.ErrorIs(t, err, usecase.ErrInvalidRoomInput)
	})
}

func TestRoomCreate(t *testing.T) {
	ctx := context.Background()

	input := usecase.RoomInput{
		Name:       "Sky Suite",
		RoomType:   "SUITE",
		PriceCents: 45000,
		Capacity:   4,
		TotalUnits: 3,
	}

	t.Run("creates and invalidates list cache", func(t *testing.T) {
		roomRepo := new(MockRoomRepository)
		roomRepo.On("Create", ctx, mock.AnythingOfType("*room.Room")).Return(nil)

		cache := new(MockRoomCache)
		cache.On("InvalidateList", ctx).Return()

		uc := usecase.NewRoomUseCase(roomRepo, new(MockReservationRepository), cache)

		rm, err := uc.Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "Sky Suite", rm.Name)
		assert.Equal(t, "SUITE", rm.RoomType)
		cache.AssertExpectations(t)
	})

	t.Run("invalid room type", func(t *testing.T) {
		uc := usecase.NewRoomUseCase(new(MockRoomRepository), new(MockReservationRepository), new(MockRoomCache))
		bad := input
		bad.RoomType = "CLOSET"

		_, err := uc.Create(ctx, bad)
		assert.ErrorIs(t, err, usecase.ErrInvalidRoomInput)
	})
}

func TestRoomDelete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("foreign key violation maps to has-reservations", func(t *testing.T) {
		roomRepo := new(MockRoomRepository)
		roomRepo.On("Delete", ctx, id).Return(
			fkErr(),
		)

		uc := usecase.NewRoomUseCase(roomRepo, new(MockReservationRepository), new(MockRoomCache))
		assert.ErrorIs(t, uc.Delete(ctx, id), usecase.ErrRoomHasReservations)
	})

	t.Run("delete invalidates both cache entries", func(t *testing.T) {
		roomRepo := new(MockRoomRepository)
		roomRepo.On("Delete", ctx, id).Return(nil)

		cache := new(MockRoomCache)
		cache.On("Invalidate", ctx, id).Return()
		cache.On("InvalidateList", ctx).Return()

		uc := usecase.NewRoomUseCase(roomRepo, new(MockReservationRepository), cache)
		require.NoError(t, uc.Delete(ctx, id))
		cache.AssertExpectations(t)
	})
}
