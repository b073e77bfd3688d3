//go:build unit

package memstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/spot"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/user"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra/memstore"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/clock"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/errs"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newUser(t *testing.T, email string) *user.User {
	t.Helper()
	addr, err := user.NewEmail(email)
	require.NoError(t, err)
	entity, err := user.NewUser("Test User", addr, "hash", user.RoleCustomer)
	require.NoError(t, err)
	return entity
}

func TestWithinCommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	store := memstore.New(clock.NewMockClock(base))
	entity := newUser(t, "ana@example.com")

	err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, entity)
	})
	require.NoError(t, err)

	err = store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Users().FindByID(ctx, entity.ID())
		if err != nil {
			return err
		}
		assert.Equal(t, "ana@example.com", found.Email().Value())
		assert.Equal(t, base, found.CreatedAt())
		return nil
	})
	require.NoError(t, err)
}

func TestWithinRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := memstore.New(clock.NewMockClock(base))
	entity := newUser(t, "ana@example.com")
	boom := errs.New("business check failed")

	err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().Create(ctx, entity); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Nothing from the failed unit may be visible afterwards.
	err = store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Users().FindByID(ctx, entity.ID())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		return nil
	})
	require.NoError(t, err)
}

func TestWithinRespectsCancelledContext(t *testing.T) {
	store := memstore.New(clock.NewMockClock(base))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Within(ctx, func(context.Context, shared.Tx) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDuplicateEmailRejected(t *testing.T) {
	ctx := context.Background()
	store := memstore.New(clock.NewMockClock(base))

	require.NoError(t, store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, newUser(t, "ana@example.com"))
	}))

	err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, newUser(t, "ana@example.com"))
	})
	assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(base)
	store := memstore.New(clk)

	entity, err := spot.NewSpot("A-01", "Level 1", 5000, "standard", uuid.New())
	require.NoError(t, err)

	require.NoError(t, store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Spots().Create(ctx, entity)
	}))

	clk.Add(time.Hour)

	require.NoError(t, store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Spots().FindByID(ctx, entity.ID())
		if err != nil {
			return err
		}
		if err := found.Rename("A-02"); err != nil {
			return err
		}
		return tx.Spots().Update(ctx, found)
	}))

	require.NoError(t, store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Spots().FindByID(ctx, entity.ID())
		if err != nil {
			return err
		}
		assert.Equal(t, base, found.CreatedAt())
		assert.Equal(t, base.Add(time.Hour), found.UpdatedAt())
		assert.Equal(t, "A-02", found.Name())
		return nil
	}))
}
