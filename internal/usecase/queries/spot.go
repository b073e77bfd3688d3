package queries

import (
	"context"

	"github.com/SrRalo/park-pal-reserva-facil/internal/infra"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrSpotNotFound = errs.New("spot not found")

type SpotQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SpotView, error)
	// ListAvailable backs the customer search page.
	ListAvailable(ctx context.Context) ([]*SpotView, error)
	// ListByOwner backs the operator's spot management view.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*SpotView, error)
	ListAll(ctx context.Context) ([]*SpotView, error)
}

type spotQueriesImpl struct {
	store SpotReadStore
}

func NewSpotQueries(store SpotReadStore) SpotQueries {
	return &spotQueriesImpl{store: store}
}

func (q *spotQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SpotView, error) {
	view, err := q.store.FindView(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *spotQueriesImpl) ListAvailable(ctx context.Context) ([]*SpotView, error) {
	return q.store.ListAvailable(ctx)
}

func (q *spotQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*SpotView, error) {
	return q.store.ListByOwner(ctx, ownerID)
}

func (q *spotQueriesImpl) ListAll(ctx context.Context) ([]*SpotView, error) {
	return q.store.ListAll(ctx)
}
