//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingReservation(t *testing.T) *reservation.Reservation {
	t.Helper()

	plate, err := reservation.NewLicensePlate("abc-1234")
	require.NoError(t, err)

	window, err := reservation.NewStayWindow(baseTime, baseTime.Add(2*time.Hour))
	require.NoError(t, err)

	return reservation.NewReservation(uuid.New(), uuid.New(), plate, window)
}

func TestNewReservation(t *testing.T) {
	r := newPendingReservation(t)

	assert.NotEqual(t, uuid.Nil, r.ID())
	assert.Equal(t, reservation.StatusPending, r.Status())
	assert.Equal(t, "ABC-1234", r.LicensePlate().Value())
	assert.Nil(t, r.EntryTime())
	assert.Nil(t, r.ExitTime())
	assert.Nil(t, r.TotalCost())
	assert.True(t, r.IsOpen())
}

func TestStayWindowValidation(t *testing.T) {
	_, err := reservation.NewStayWindow(baseTime, baseTime)
	assert.ErrorIs(t, err, reservation.ErrInvalidStayWindow)

	_, err = reservation.NewStayWindow(baseTime.Add(time.Hour), baseTime)
	assert.ErrorIs(t, err, reservation.ErrInvalidStayWindow)
}

func TestLicensePlateValidation(t *testing.T) {
	_, err := reservation.NewLicensePlate("   ")
	assert.ErrorIs(t, err, reservation.ErrEmptyLicensePlate)

	plate, err := reservation.NewLicensePlate("  xyz-99 ")
	require.NoError(t, err)
	assert.Equal(t, "XYZ-99", plate.Value())
}

func TestCancel(t *testing.T) {
	t.Run("pending can be cancelled", func(t *testing.T) {
		r := newPendingReservation(t)
		require.NoError(t, r.Cancel())
		assert.Equal(t, reservation.StatusCancelled, r.Status())
		assert.False(t, r.IsOpen())
	})

	t.Run("active cannot be cancelled", func(t *testing.T) {
		r := newPendingReservation(t)
		require.NoError(t, r.RegisterEntry(baseTime))
		assert.ErrorIs(t, r.Cancel(), reservation.ErrNotPending)
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		r := newPendingReservation(t)
		require.NoError(t, r.Cancel())
		assert.ErrorIs(t, r.Cancel(), reservation.ErrNotPending)
	})
}

func TestRegisterEntry(t *testing.T) {
	r := newPendingReservation(t)

	entryAt := baseTime.Add(10 * time.Minute)
	require.NoError(t, r.RegisterEntry(entryAt))

	assert.Equal(t, reservation.StatusActive, r.Status())
	require.NotNil(t, r.EntryTime())
	assert.Equal(t, entryAt, *r.EntryTime())

	assert.ErrorIs(t, r.RegisterEntry(entryAt), reservation.ErrNotPending)
}

func TestRegisterExit(t *testing.T) {
	t.Run("bills elapsed stay and completes", func(t *testing.T) {
		r := newPendingReservation(t)
		require.NoError(t, r.RegisterEntry(baseTime))

		cost, err := r.RegisterExit(baseTime.Add(90*time.Minute), 5000)
		require.NoError(t, err)

		assert.Equal(t, int64(7500), cost)
		assert.Equal(t, reservation.StatusCompleted, r.Status())
		require.NotNil(t, r.TotalCost())
		assert.Equal(t, int64(7500), *r.TotalCost())
		require.NotNil(t, r.ExitTime())
	})

	t.Run("pending cannot exit", func(t *testing.T) {
		r := newPendingReservation(t)
		_, err := r.RegisterExit(baseTime.Add(time.Hour), 5000)
		assert.ErrorIs(t, err, reservation.ErrNotActive)
	})

	t.Run("completed cannot exit again", func(t *testing.T) {
		r := newPendingReservation(t)
		require.NoError(t, r.RegisterEntry(baseTime))
		_, err := r.RegisterExit(baseTime.Add(time.Hour), 5000)
		require.NoError(t, err)

		_, err = r.RegisterExit(baseTime.Add(2*time.Hour), 5000)
		assert.ErrorIs(t, err, reservation.ErrNotActive)
	})
}

func TestComplete(t *testing.T) {
	t.Run("closes pending without cost", func(t *testing.T) {
		r := newPendingReservation(t)
		require.NoError(t, r.Complete())
		assert.Equal(t, reservation.StatusCompleted, r.Status())
		assert.Nil(t, r.TotalCost())
	})

	t.Run("closes active without cost", func(t *testing.T) {
		r := newPendingReservation(t)
		require.NoError(t, r.RegisterEntry(baseTime))
		require.NoError(t, r.Complete())
		assert.Equal(t, reservation.StatusCompleted, r.Status())
		assert.Nil(t, r.TotalCost())
	})

	t.Run("terminal stays terminal", func(t *testing.T) {
		r := newPendingReservation(t)
		require.NoError(t, r.Cancel())
		assert.ErrorIs(t, r.Complete(), reservation.ErrAlreadyTerminal)
	})
}

func TestEstimatedCostFromWindow(t *testing.T) {
	r := newPendingReservation(t)
	assert.Equal(t, int64(10000), r.EstimatedCost(5000))
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, reservation.StatusPending.IsOpen())
	assert.True(t, reservation.StatusActive.IsOpen())
	assert.False(t, reservation.StatusCompleted.IsOpen())
	assert.False(t, reservation.StatusCancelled.IsOpen())

	assert.True(t, reservation.StatusCompleted.IsTerminal())
	assert.True(t, reservation.StatusCancelled.IsTerminal())
	assert.False(t, reservation.StatusPending.IsTerminal())
	assert.False(t, reservation.StatusActive.IsTerminal())
}
