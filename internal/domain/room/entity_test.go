//go:build unit

package room_test

import (
	"testing"

	"stayhub/internal/domain/room"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() room.NewRoomParams {
	return room.NewRoomParams{
		Name:       "Garden Deluxe",
		RoomType:   room.TypeDeluxe,
		PriceCents: 18900,
		Capacity:   3,
		TotalUnits: 12,
		Amenities:  []string{"wifi", "minibar"},
	}
}

func TestNewRoom(t *testing.T) {
	t.Run("valid room", func(t *testing.T) {
		r, err := room.NewRoom(validParams())
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, r.ID())
		assert.True(t, r.Available())
		assert.Equal(t, "usd", r.Currency())
		assert.Equal(t, 12, r.TotalUnits())
	})

	t.Run("explicit currency kept", func(t *testing.T) {
		p := validParams()
		p.Currency = "eur"
		r, err := room.NewRoom(p)
		require.NoError(t, err)
		assert.Equal(t, "eur", r.Currency())
	})

	t.Run("invalid room type", func(t *testing.T) {
		p := validParams()
		p.RoomType = room.Type("PENTHOUSE")
		_, err := room.NewRoom(p)
		assert.ErrorIs(t, err, room.ErrInvalidRoomType)
	})

	t.Run("negative price", func(t *testing.T) {
		p := validParams()
		p.PriceCents = -1
		_, err := room.NewRoom(p)
		assert.ErrorIs(t, err, room.ErrInvalidPrice)
	})

	t.Run("zero capacity", func(t *testing.T) {
		p := validParams()
		p.Capacity = 0
		_, err := room.NewRoom(p)
		assert.ErrorIs(t, err, room.ErrInvalidCapacity)
	})

	t.Run("negative units", func(t *testing.T) {
		p := validParams()
		p.TotalUnits = -1
		_, err := room.NewRoom(p)
		assert.ErrorIs(t, err, room.ErrInvalidUnits)
	})

	t.Run("zero units is a sold-out category, not an error", func(t *testing.T) {
		p := validParams()
		p.TotalUnits = 0
		r, err := room.NewRoom(p)
		require.NoError(t, err)
		assert.Equal(t, 0, r.TotalUnits())
	})
}

func TestRoomUpdate(t *testing.T) {
	r, err := room.NewRoom(validParams())
	require.NoError(t, err)

	t.Run("valid update", func(t *testing.T) {
		p := validParams()
		p.Name = "Garden Suite"
		p.RoomType = room.TypeSuite
		p.PriceCents = 25000
		require.NoError(t, r.Update(p))

		assert.Equal(t, "Garden Suite", r.Name())
		assert.Equal(t, room.TypeSuite, r.RoomType())
		assert.Equal(t, int64(25000), r.PriceCents())
	})

	t.Run("empty currency leaves existing currency", func(t *testing.T) {
		p := validParams()
		p.Currency = ""
		require.NoError(t, r.Update(p))
		assert.Equal(t, "usd", r.Currency())
	})

	t.Run("invalid update rejected without mutation", func(t *testing.T) {
		before := r.PriceCents()
		p := validParams()
		p.PriceCents = -5
		assert.ErrorIs(t, r.Update(p), room.ErrInvalidPrice)
		assert.Equal(t, before, r.PriceCents())
	})
}

func TestCanAccommodate(t *testing.T) {
	r, err := room.NewRoom(validParams())
	require.NoError(t, err)

	assert.True(t, r.CanAccommodate(1))
	assert.True(t, r.CanAccommodate(3))
	assert.False(t, r.CanAccommodate(0))
	assert.False(t, r.CanAccommodate(4))
}

func TestNewType(t *testing.T) {
	for _, valid := range []string{"STANDARD", "DELUXE", "SUITE", "PRESIDENTIAL"} {
		rt, err := room.NewType(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, rt.String())
	}

	_, err := room.NewType("standard")
	assert.ErrorIs(t, err, room.ErrInvalidRoomType)
}
