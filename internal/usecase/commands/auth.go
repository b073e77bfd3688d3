package commands

import (
	"context"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/user"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/clock"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/errs"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/jwt"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/password"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/shared"
)

var (
	ErrEmailAlreadyRegistered = errs.New("email is already registered")
	ErrInvalidCredentials     = errs.New("invalid email or password")
	ErrUserInactive           = errs.New("user account is deactivated")
	ErrInvalidUserInput       = errs.New("invalid user input")
	ErrRoleNotAssignable      = errs.New("role cannot be self-assigned")
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token string
	User  *queries.UserView
}

type AuthCommands interface {
	// Register creates a customer or operator account. Admin accounts are
	// provisioned out of band.
	Register(ctx context.Context, input RegisterInput) (*queries.UserView, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	// Logout denylists the token until its natural expiry.
	Logout(ctx context.Context, claims *jwt.Claims) error
}

type authCommandsImpl struct {
	uow     shared.UnitOfWork
	reads   queries.UserQueries
	tokens  *jwt.Service
	revoker shared.TokenRevoker
	clock   clock.Clock
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	reads queries.UserQueries,
	tokens *jwt.Service,
	revoker shared.TokenRevoker,
	clk clock.Clock,
) AuthCommands {
	return &authCommandsImpl{
		uow:     uow,
		reads:   reads,
		tokens:  tokens,
		revoker: revoker,
		clock:   clk,
	}
}

func (c *authCommandsImpl) Register(ctx context.Context, input RegisterInput) (*queries.UserView, error) {
	role := user.RoleCustomer
	if input.Role != "" {
		parsed, err := user.NewRole(input.Role)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidUserInput)
		}
		if parsed == user.RoleAdmin {
			return nil, ErrRoleNotAssignable
		}
		role = parsed
	}

	email, err := user.NewEmail(input.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidUserInput)
	}
	if _, err := user.NewPassword(input.Password); err != nil {
		return nil, errs.Mark(err, ErrInvalidUserInput)
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrStorageFailure)
	}

	entity, err := user.NewUser(input.Name, email, hashed, role)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidUserInput)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Users().FindByEmail(ctx, email.Value()); err == nil {
			return ErrEmailAlreadyRegistered
		} else if !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrStorageFailure)
		}

		if err := tx.Users().Create(ctx, entity); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrEmailAlreadyRegistered
			}
			return errs.Mark(err, ErrStorageFailure)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.reads.GetCurrentUser(ctx, entity.ID())
}

func (c *authCommandsImpl) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	var entity *user.User
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Users().FindByEmail(ctx, input.Email)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrInvalidCredentials
			}
			return errs.Mark(err, ErrStorageFailure)
		}
		if err := password.Compare(found.PasswordHash(), input.Password); err != nil {
			return ErrInvalidCredentials
		}
		if !found.IsActive() {
			return ErrUserInactive
		}

		found.RecordLogin(c.clock.Now())
		if err := tx.Users().Update(ctx, found); err != nil {
			return errs.Mark(err, ErrStorageFailure)
		}
		entity = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := c.tokens.GenerateToken(entity.ID(), entity.Role())
	if err != nil {
		return nil, errs.Wrap(err, "generating token")
	}

	view, err := c.reads.GetCurrentUser(ctx, entity.ID())
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: view}, nil
}

func (c *authCommandsImpl) Logout(ctx context.Context, claims *jwt.Claims) error {
	ttl := claims.RemainingValidity(c.clock.Now())
	if ttl <= 0 {
		ttl = time.Minute
	}
	return c.revoker.Revoke(ctx, claims.ID, ttl)
}
