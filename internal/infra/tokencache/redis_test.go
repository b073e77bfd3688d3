//go:build unit

package tokencache_test

import (
	"context"
	"testing"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/infra/tokencache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisDenylist(t *testing.T) (*tokencache.RedisDenylist, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return tokencache.NewRedisDenylist(client), mr
}

func TestRedisDenylist(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked token is denied until expiry", func(t *testing.T) {
		denylist, mr := newRedisDenylist(t)

		require.NoError(t, denylist.Revoke(ctx, "token-1", time.Minute))

		revoked, err := denylist.IsRevoked(ctx, "token-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		mr.FastForward(2 * time.Minute)

		revoked, err = denylist.IsRevoked(ctx, "token-1")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("unknown token is not revoked", func(t *testing.T) {
		denylist, _ := newRedisDenylist(t)

		revoked, err := denylist.IsRevoked(ctx, "never-seen")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("non positive ttl is a no op", func(t *testing.T) {
		denylist, _ := newRedisDenylist(t)

		require.NoError(t, denylist.Revoke(ctx, "token-2", 0))

		revoked, err := denylist.IsRevoked(ctx, "token-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
