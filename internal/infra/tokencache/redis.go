// Package tokencache implements the logout denylist. Revoked token IDs
// live until their natural JWT expiry, so the cache never grows past the
// set of tokens that could still be replayed.
package tokencache

import (
	"context"
	"errors"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/errs"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "denylist:token:"

type RedisDenylist struct {
	client *redis.Client
}

func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client}
}

var _ shared.TokenRevoker = (*RedisDenylist)(nil)

func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, keyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return errs.Wrap(err, "revoking token")
	}
	return nil
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := d.client.Get(ctx, keyPrefix+tokenID).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, errs.Wrap(err, "checking token denylist")
	}
	return true, nil
}
