package queries

import (
	"context"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/vehicle"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrVehicleNotFound = errs.New("vehicle not found")

type VehicleQueries interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*VehicleView, error)
	GetByPlate(ctx context.Context, plate string) (*VehicleView, error)
}

type vehicleQueriesImpl struct {
	store VehicleReadStore
}

func NewVehicleQueries(store VehicleReadStore) VehicleQueries {
	return &vehicleQueriesImpl{store: store}
}

func (q *vehicleQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*VehicleView, error) {
	return q.store.ListByUser(ctx, userID)
}

func (q *vehicleQueriesImpl) GetByPlate(ctx context.Context, plate string) (*VehicleView, error) {
	view, err := q.store.FindByPlate(ctx, vehicle.NormalizePlate(plate))
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return view, nil
}
