package commands

import (
	"context"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/user"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/errs"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound     = errs.New("user not found")
	ErrCannotEditSelf   = errs.New("admins cannot change their own account")
	ErrUserHasOpenItems = errs.New("user still holds pending or active reservations")
)

type UserCommands interface {
	ChangeRole(ctx context.Context, actor shared.Actor, id uuid.UUID, role string) (*queries.UserView, error)
	Deactivate(ctx context.Context, actor shared.Actor, id uuid.UUID) error
	Activate(ctx context.Context, actor shared.Actor, id uuid.UUID) error
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}

type userCommandsImpl struct {
	uow   shared.UnitOfWork
	reads queries.UserQueries
}

func NewUserCommands(uow shared.UnitOfWork, reads queries.UserQueries) UserCommands {
	return &userCommandsImpl{uow: uow, reads: reads}
}

func (c *userCommandsImpl) ChangeRole(ctx context.Context, actor shared.Actor, id uuid.UUID, role string) (*queries.UserView, error) {
	newRole, err := user.NewRole(role)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidUserInput)
	}

	err = c.mutate(ctx, actor, id, func(ctx context.Context, tx shared.Tx, entity *user.User) error {
		return entity.ChangeRole(newRole)
	})
	if err != nil {
		return nil, err
	}

	return c.reads.GetCurrentUser(ctx, id)
}

func (c *userCommandsImpl) Deactivate(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	return c.mutate(ctx, actor, id, func(ctx context.Context, tx shared.Tx, entity *user.User) error {
		entity.Deactivate()
		return nil
	})
}

func (c *userCommandsImpl) Activate(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	return c.mutate(ctx, actor, id, func(ctx context.Context, tx shared.Tx, entity *user.User) error {
		entity.Activate()
		return nil
	})
}

func (c *userCommandsImpl) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return queries.ErrAccessDenied
	}
	if actor.ID == id {
		return ErrCannotEditSelf
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := c.findUser(ctx, tx, id); err != nil {
			return err
		}

		open, err := tx.Reservations().CountOpenByUser(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		if open > 0 {
			return ErrUserHasOpenItems
		}

		if err := tx.Users().Delete(ctx, id); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		return nil
	})
}

func (c *userCommandsImpl) mutate(
	ctx context.Context,
	actor shared.Actor,
	id uuid.UUID,
	fn func(ctx context.Context, tx shared.Tx, entity *user.User) error,
) error {
	if !actor.IsAdmin() {
		return queries.ErrAccessDenied
	}
	if actor.ID == id {
		return ErrCannotEditSelf
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := c.findUser(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(ctx, tx, entity); err != nil {
			return err
		}
		if err := tx.Users().Update(ctx, entity); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		return nil
	})
}

func (c *userCommandsImpl) findUser(ctx context.Context, tx shared.Tx, id uuid.UUID) (*user.User, error) {
	entity, err := tx.Users().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Mark(err, ErrStorageFailure)
	}
	return entity, nil
}
