//go:build unit

package spot_test

import (
	"testing"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/spot"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAvailableSpot(t *testing.T) *spot.Spot {
	t.Helper()

	s, err := spot.NewSpot("A-01", "Level 1, north wing", 5000, "standard", uuid.New())
	require.NoError(t, err)
	return s
}

func TestNewSpot(t *testing.T) {
	t.Run("valid spot starts available", func(t *testing.T) {
		s := newAvailableSpot(t)
		assert.NotEqual(t, uuid.Nil, s.ID())
		assert.Equal(t, "A-01", s.Name())
		assert.Equal(t, spot.StatusAvailable, s.Status())
		assert.True(t, s.IsAvailable())
	})

	t.Run("name is trimmed", func(t *testing.T) {
		s, err := spot.NewSpot("  B-02  ", " basement ", 3000, "compact", uuid.New())
		require.NoError(t, err)
		assert.Equal(t, "B-02", s.Name())
		assert.Equal(t, "basement", s.Location())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := spot.NewSpot("   ", "somewhere", 5000, "standard", uuid.New())
		assert.ErrorIs(t, err, spot.ErrEmptyName)
	})

	t.Run("non positive rate rejected", func(t *testing.T) {
		_, err := spot.NewSpot("C-03", "somewhere", 0, "standard", uuid.New())
		assert.ErrorIs(t, err, spot.ErrInvalidHourlyRate)

		_, err = spot.NewSpot("C-03", "somewhere", -100, "standard", uuid.New())
		assert.ErrorIs(t, err, spot.ErrInvalidHourlyRate)
	})
}

func TestStatusTransitions(t *testing.T) {
	t.Run("full cycle", func(t *testing.T) {
		s := newAvailableSpot(t)

		require.NoError(t, s.Reserve())
		assert.Equal(t, spot.StatusReserved, s.Status())

		require.NoError(t, s.Occupy())
		assert.Equal(t, spot.StatusOccupied, s.Status())

		require.NoError(t, s.Release())
		assert.Equal(t, spot.StatusAvailable, s.Status())
	})

	t.Run("reserve requires available", func(t *testing.T) {
		s := newAvailableSpot(t)
		require.NoError(t, s.Reserve())
		assert.ErrorIs(t, s.Reserve(), spot.ErrNotAvailable)
	})

	t.Run("occupy requires reserved", func(t *testing.T) {
		s := newAvailableSpot(t)
		assert.ErrorIs(t, s.Occupy(), spot.ErrNotReserved)
	})

	t.Run("release from reserved", func(t *testing.T) {
		s := newAvailableSpot(t)
		require.NoError(t, s.Reserve())
		require.NoError(t, s.Release())
		assert.True(t, s.IsAvailable())
	})

	t.Run("release requires non available", func(t *testing.T) {
		s := newAvailableSpot(t)
		assert.ErrorIs(t, s.Release(), spot.ErrNotReleasable)
	})
}

func TestSpotUpdates(t *testing.T) {
	s := newAvailableSpot(t)

	require.NoError(t, s.Rename("A-01-new"))
	assert.Equal(t, "A-01-new", s.Name())
	assert.ErrorIs(t, s.Rename("  "), spot.ErrEmptyName)

	s.Relocate(" Level 2 ")
	assert.Equal(t, "Level 2", s.Location())

	require.NoError(t, s.ChangeHourlyRate(8000))
	assert.Equal(t, int64(8000), s.HourlyRate())
	assert.ErrorIs(t, s.ChangeHourlyRate(0), spot.ErrInvalidHourlyRate)

	s.ChangeType("oversized")
	assert.Equal(t, "oversized", s.Type())
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, spot.StatusAvailable.IsValid())
	assert.True(t, spot.StatusReserved.IsValid())
	assert.True(t, spot.StatusOccupied.IsValid())
	assert.False(t, spot.Status("parked").IsValid())
}
