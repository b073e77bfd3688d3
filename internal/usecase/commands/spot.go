package commands

import (
	"context"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/spot"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/errs"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidSpot             = errs.New("invalid spot")
	ErrSpotHasOpenReservations = errs.New("spot has pending or active reservations")
)

type CreateSpotInput struct {
	Name       string
	Location   string
	HourlyRate int64
	Type       string
}

// UpdateSpotInput carries optional fields; nil means "leave unchanged".
// Status is deliberately absent: spot status only moves with the
// reservation lifecycle.
type UpdateSpotInput struct {
	Name       *string
	Location   *string
	HourlyRate *int64
	Type       *string
}

type SpotCommands interface {
	Create(ctx context.Context, actor shared.Actor, input CreateSpotInput) (*queries.SpotView, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, input UpdateSpotInput) (*queries.SpotView, error)
	// Delete refuses while any pending/active reservation references the
	// spot.
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}

type spotCommandsImpl struct {
	uow   shared.UnitOfWork
	reads queries.SpotQueries
}

func NewSpotCommands(uow shared.UnitOfWork, reads queries.SpotQueries) SpotCommands {
	return &spotCommandsImpl{uow: uow, reads: reads}
}

func (c *spotCommandsImpl) Create(ctx context.Context, actor shared.Actor, input CreateSpotInput) (*queries.SpotView, error) {
	entity, err := spot.NewSpot(input.Name, input.Location, input.HourlyRate, input.Type, actor.ID)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidSpot)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Spots().Create(ctx, entity); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.reads.GetByID(ctx, entity.ID())
}

func (c *spotCommandsImpl) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, input UpdateSpotInput) (*queries.SpotView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := c.findOwnedSpot(ctx, tx, actor, id)
		if err != nil {
			return err
		}

		if input.Name != nil {
			if err := entity.Rename(*input.Name); err != nil {
				return errs.Mark(err, ErrInvalidSpot)
			}
		}
		if input.Location != nil {
			entity.Relocate(*input.Location)
		}
		if input.HourlyRate != nil {
			if err := entity.ChangeHourlyRate(*input.HourlyRate); err != nil {
				return errs.Mark(err, ErrInvalidSpot)
			}
		}
		if input.Type != nil {
			entity.ChangeType(*input.Type)
		}

		if err := tx.Spots().Update(ctx, entity); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.reads.GetByID(ctx, id)
}

func (c *spotCommandsImpl) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := c.findOwnedSpot(ctx, tx, actor, id); err != nil {
			return err
		}

		blocked, err := tx.Reservations().HasOpenBySpot(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		if blocked {
			return ErrSpotHasOpenReservations
		}

		if err := tx.Spots().Delete(ctx, id); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		return nil
	})
}

func (c *spotCommandsImpl) findOwnedSpot(ctx context.Context, tx shared.Tx, actor shared.Actor, id uuid.UUID) (*spot.Spot, error) {
	entity, err := tx.Spots().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, errs.Mark(err, ErrStorageFailure)
	}
	if !actor.IsAdmin() && entity.OwnerID() != actor.ID {
		return nil, ErrNotSpotOwner
	}
	return entity, nil
}
