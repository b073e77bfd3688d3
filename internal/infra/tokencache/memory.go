package tokencache

import (
	"context"
	"sync"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/clock"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/shared"
)

// MemoryDenylist backs deployments without Redis. Expired entries are
// dropped lazily on access.
type MemoryDenylist struct {
	mu      sync.Mutex
	clock   clock.Clock
	expires map[string]time.Time
}

func NewMemoryDenylist(clk clock.Clock) *MemoryDenylist {
	return &MemoryDenylist{
		clock:   clk,
		expires: make(map[string]time.Time),
	}
}

var _ shared.TokenRevoker = (*MemoryDenylist)(nil)

func (d *MemoryDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.purgeLocked()
	d.expires[tokenID] = d.clock.Now().Add(ttl)
	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	expiry, ok := d.expires[tokenID]
	if !ok {
		return false, nil
	}
	if d.clock.Now().After(expiry) {
		delete(d.expires, tokenID)
		return false, nil
	}
	return true, nil
}

func (d *MemoryDenylist) purgeLocked() {
	now := d.clock.Now()
	for id, expiry := range d.expires {
		if now.After(expiry) {
			delete(d.expires, id)
		}
	}
}
