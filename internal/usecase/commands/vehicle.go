package commands

import (
	"context"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/vehicle"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/errs"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidVehicle         = errs.New("invalid vehicle")
	ErrVehicleNotFound        = errs.New("vehicle not found")
	ErrPlateAlreadyRegistered = errs.New("license plate is already registered")
	ErrNotVehicleOwner        = errs.New("vehicle does not belong to the caller")
)

type RegisterVehicleInput struct {
	Plate string
	Type  string
	Model string
	Color string
}

type UpdateVehicleInput struct {
	Model *string
	Color *string
}

type VehicleCommands interface {
	Register(ctx context.Context, actor shared.Actor, input RegisterVehicleInput) (*queries.VehicleView, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, input UpdateVehicleInput) error
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}

type vehicleCommandsImpl struct {
	uow   shared.UnitOfWork
	reads queries.VehicleQueries
}

func NewVehicleCommands(uow shared.UnitOfWork, reads queries.VehicleQueries) VehicleCommands {
	return &vehicleCommandsImpl{uow: uow, reads: reads}
}

func (c *vehicleCommandsImpl) Register(ctx context.Context, actor shared.Actor, input RegisterVehicleInput) (*queries.VehicleView, error) {
	entity, err := vehicle.NewVehicle(actor.ID, input.Plate, vehicle.Type(input.Type), input.Model, input.Color)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidVehicle)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Vehicles().FindByPlate(ctx, entity.Plate()); err == nil {
			return ErrPlateAlreadyRegistered
		} else if !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrStorageFailure)
		}

		if err := tx.Vehicles().Create(ctx, entity); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrPlateAlreadyRegistered
			}
			return errs.Mark(err, ErrStorageFailure)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.reads.GetByPlate(ctx, entity.Plate())
}

func (c *vehicleCommandsImpl) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, input UpdateVehicleInput) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := c.findOwnedVehicle(ctx, tx, actor, id)
		if err != nil {
			return err
		}

		model := entity.Model()
		color := entity.Color()
		if input.Model != nil {
			model = *input.Model
		}
		if input.Color != nil {
			color = *input.Color
		}
		entity.UpdateDetails(model, color)

		if err := tx.Vehicles().Update(ctx, entity); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		return nil
	})
}

func (c *vehicleCommandsImpl) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := c.findOwnedVehicle(ctx, tx, actor, id); err != nil {
			return err
		}
		if err := tx.Vehicles().Delete(ctx, id); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		return nil
	})
}

func (c *vehicleCommandsImpl) findOwnedVehicle(ctx context.Context, tx shared.Tx, actor shared.Actor, id uuid.UUID) (*vehicle.Vehicle, error) {
	entity, err := tx.Vehicles().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, errs.Mark(err, ErrStorageFailure)
	}
	if !actor.IsAdmin() && entity.UserID() != actor.ID {
		return nil, ErrNotVehicleOwner
	}
	return entity, nil
}
