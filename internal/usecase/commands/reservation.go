package commands

import (
	"context"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/reservation"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/spot"
	"github.com/SrRalo/park-pal-reserva-facil/internal/events"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra"
	"github.com/SrRalo/park-pal-reserva-facil/internal/metrics"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/clock"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/config"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/errs"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSpotNotFound             = errs.New("spot not found")
	ErrSpotUnavailable          = errs.New("spot is not available")
	ErrReservationNotFound      = errs.New("reservation not found")
	ErrReservationLimitExceeded = errs.New("active reservation limit exceeded")
	ErrInvalidStayWindow        = errs.New("invalid stay window")
	ErrInvalidLicensePlate      = errs.New("invalid license plate")
	ErrNotCancellable           = errs.New("only pending reservations can be cancelled")
	ErrEntryNotAllowed          = errs.New("entry can only be registered for pending reservations")
	ErrExitNotAllowed           = errs.New("exit can only be registered for active reservations")
	ErrAlreadyFinished          = errs.New("reservation is already completed or cancelled")
	ErrNotReservationOwner      = errs.New("reservation does not belong to the caller")
	ErrNotSpotOwner             = errs.New("spot does not belong to the caller")
	ErrStorageFailure           = errs.New("storage operation failed")
)

type CreateReservationInput struct {
	SpotID             uuid.UUID
	LicensePlate       string
	EstimatedEntryTime time.Time
	EstimatedExitTime  time.Time
}

type ReservationCommands interface {
	Create(ctx context.Context, actor shared.Actor, input CreateReservationInput) (*queries.ReservationView, error)
	// Cancel frees the spot; pending reservations only, by the holder or an
	// admin.
	Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID) error
	// RegisterEntry records the real arrival; operator of the spot or admin.
	RegisterEntry(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.ReservationView, error)
	// RegisterExit bills the stay and frees the spot; returns the total cost.
	RegisterExit(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.ReservationView, int64, error)
	// Complete is the admin override closing a reservation without billing.
	Complete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}

type reservationCommandsImpl struct {
	uow   shared.UnitOfWork
	reads queries.ReservationQueries
	bus   *events.Bus
	clock clock.Clock
	limit int
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	reads queries.ReservationQueries,
	bus *events.Bus,
	clk clock.Clock,
	cfg config.Config,
) ReservationCommands {
	limit := cfg.Reservation.ActiveLimit
	if limit <= 0 {
		limit = 3
	}
	return &reservationCommandsImpl{
		uow:   uow,
		reads: reads,
		bus:   bus,
		clock: clk,
		limit: limit,
	}
}

func (c *reservationCommandsImpl) Create(ctx context.Context, actor shared.Actor, input CreateReservationInput) (*queries.ReservationView, error) {
	plate, err := reservation.NewLicensePlate(input.LicensePlate)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidLicensePlate)
	}
	window, err := reservation.NewStayWindow(input.EstimatedEntryTime, input.EstimatedExitTime)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStayWindow)
	}

	var reservationID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		open, err := tx.Reservations().CountOpenByUser(ctx, actor.ID)
		if err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		if open >= c.limit {
			return ErrReservationLimitExceeded
		}

		spotEntity, err := tx.Spots().FindByID(ctx, input.SpotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSpotNotFound
			}
			return errs.Mark(err, ErrStorageFailure)
		}
		if err := spotEntity.Reserve(); err != nil {
			return ErrSpotUnavailable
		}

		entity := reservation.NewReservation(actor.ID, input.SpotID, plate, window)
		if err := tx.Reservations().Create(ctx, entity); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		if err := tx.Spots().Update(ctx, spotEntity); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}

		reservationID = entity.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.reads.GetByIDSystem(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	c.publish(events.EventReservationCreated, view)
	return view, nil
}

func (c *reservationCommandsImpl) Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := c.findReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && entity.UserID() != actor.ID {
			return ErrNotReservationOwner
		}

		if err := entity.Cancel(); err != nil {
			return errs.Mark(err, ErrNotCancellable)
		}
		if err := tx.Reservations().Update(ctx, entity); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}

		return c.releaseSpot(ctx, tx, entity.SpotID())
	})
	if err != nil {
		return err
	}

	if view, viewErr := c.reads.GetByIDSystem(ctx, id); viewErr == nil {
		c.publish(events.EventReservationCancelled, view)
	}
	return nil
}

func (c *reservationCommandsImpl) RegisterEntry(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.ReservationView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := c.findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		spotEntity, err := c.findSpotForOperator(ctx, tx, actor, entity.SpotID())
		if err != nil {
			return err
		}

		if err := entity.RegisterEntry(c.clock.Now()); err != nil {
			return errs.Mark(err, ErrEntryNotAllowed)
		}
		if err := spotEntity.Occupy(); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}

		if err := tx.Reservations().Update(ctx, entity); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		if err := tx.Spots().Update(ctx, spotEntity); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.reads.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}

	c.publish(events.EventReservationEntry, view)
	return view, nil
}

func (c *reservationCommandsImpl) RegisterExit(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.ReservationView, int64, error) {
	var cost int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := c.findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		spotEntity, err := c.findSpotForOperator(ctx, tx, actor, entity.SpotID())
		if err != nil {
			return err
		}

		cost, err = entity.RegisterExit(c.clock.Now(), spotEntity.HourlyRate())
		if err != nil {
			return errs.Mark(err, ErrExitNotAllowed)
		}

		if err := tx.Reservations().Update(ctx, entity); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		if err := spotEntity.Release(); err == nil {
			if err := tx.Spots().Update(ctx, spotEntity); err != nil {
				return errs.Mark(err, ErrStorageFailure)
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	view, err := c.reads.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	metrics.AddIncomeBilled(cost)
	c.publish(events.EventReservationExit, view)
	return view, cost, nil
}

func (c *reservationCommandsImpl) Complete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return queries.ErrAccessDenied
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := c.findReservation(ctx, tx, id)
		if err != nil {
			return err
		}

		wasOpen := entity.IsOpen()
		if err := entity.Complete(); err != nil {
			return errs.Mark(err, ErrAlreadyFinished)
		}
		if err := tx.Reservations().Update(ctx, entity); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}

		if wasOpen {
			return c.releaseSpot(ctx, tx, entity.SpotID())
		}
		return nil
	})
	if err != nil {
		return err
	}

	if view, viewErr := c.reads.GetByIDSystem(ctx, id); viewErr == nil {
		c.publish(events.EventReservationCompleted, view)
	}
	return nil
}

func (c *reservationCommandsImpl) findReservation(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, error) {
	entity, err := tx.Reservations().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrStorageFailure)
	}
	return entity, nil
}

// findSpotForOperator loads the reservation's spot and checks that a
// non-admin caller actually operates it.
func (c *reservationCommandsImpl) findSpotForOperator(ctx context.Context, tx shared.Tx, actor shared.Actor, spotID uuid.UUID) (*spot.Spot, error) {
	spotEntity, err := tx.Spots().FindByID(ctx, spotID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, errs.Mark(err, ErrStorageFailure)
	}
	if !actor.IsAdmin() && spotEntity.OwnerID() != actor.ID {
		return nil, ErrNotSpotOwner
	}
	return spotEntity, nil
}

func (c *reservationCommandsImpl) releaseSpot(ctx context.Context, tx shared.Tx, spotID uuid.UUID) error {
	spotEntity, err := tx.Spots().FindByID(ctx, spotID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Spot removed after its reservations closed; nothing to free.
			return nil
		}
		return errs.Mark(err, ErrStorageFailure)
	}
	if err := spotEntity.Release(); err != nil {
		return nil
	}
	if err := tx.Spots().Update(ctx, spotEntity); err != nil {
		return errs.Mark(err, ErrStorageFailure)
	}
	return nil
}

func (c *reservationCommandsImpl) publish(eventType string, view *queries.ReservationView) {
	metrics.IncReservationEvent(eventType)
	_ = c.bus.PublishJSON(eventType, events.ReservationEventPayload{
		ReservationID: view.ID,
		UserID:        view.UserID,
		SpotID:        view.SpotID,
		SpotName:      view.SpotName,
		Status:        view.Status,
		TotalCost:     view.TotalCost,
		OccurredAt:    time.Now(),
	})
}
