//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/user"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra/memstore"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra/tokencache"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/clock"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/jwt"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/commands"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/shared"

	"github.com/stretchr/testify/suite"
)

type AuthCommandsTestSuite struct {
	suite.Suite
	ctx      context.Context
	clock    *clock.MockClock
	store    *memstore.Store
	tokens   *jwt.Service
	revoker  shared.TokenRevoker
	commands commands.AuthCommands
}

func (s *AuthCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewMockClock(testBase)
	s.store = memstore.New(s.clock)
	s.tokens = jwt.NewService("test-secret", time.Hour)
	s.revoker = tokencache.NewMemoryDenylist(s.clock)

	reads := queries.NewUserQueries(s.store.UserReads())
	s.commands = commands.NewAuthCommands(s.store, reads, s.tokens, s.revoker, s.clock)
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) register(email, password string) *queries.UserView {
	view, err := s.commands.Register(s.ctx, commands.RegisterInput{
		Name:     "Ana",
		Email:    email,
		Password: password,
	})
	s.Require().NoError(err)
	return view
}

func (s *AuthCommandsTestSuite) TestRegister() {
	s.Run("defaults to the customer role", func() {
		view := s.register("ana@example.com", "supersecret")
		s.Equal(user.RoleCustomer.String(), view.Role)
		s.True(view.IsActive)
	})

	s.Run("duplicate email rejected", func() {
		_, err := s.commands.Register(s.ctx, commands.RegisterInput{
			Name:     "Imposter",
			Email:    "ana@example.com",
			Password: "supersecret",
		})
		s.ErrorIs(err, commands.ErrEmailAlreadyRegistered)
	})

	s.Run("operator role can be requested", func() {
		view, err := s.commands.Register(s.ctx, commands.RegisterInput{
			Name:     "Op",
			Email:    "op@example.com",
			Password: "supersecret",
			Role:     "operator",
		})
		s.Require().NoError(err)
		s.Equal(user.RoleOperator.String(), view.Role)
	})

	s.Run("admin role cannot be self assigned", func() {
		_, err := s.commands.Register(s.ctx, commands.RegisterInput{
			Name:     "Wannabe",
			Email:    "root@example.com",
			Password: "supersecret",
			Role:     "admin",
		})
		s.ErrorIs(err, commands.ErrRoleNotAssignable)
	})

	s.Run("weak password rejected", func() {
		_, err := s.commands.Register(s.ctx, commands.RegisterInput{
			Name:     "Short",
			Email:    "short@example.com",
			Password: "short",
		})
		s.ErrorIs(err, commands.ErrInvalidUserInput)
	})

	s.Run("bad email rejected", func() {
		_, err := s.commands.Register(s.ctx, commands.RegisterInput{
			Name:     "Bad",
			Email:    "not-an-email",
			Password: "supersecret",
		})
		s.ErrorIs(err, commands.ErrInvalidUserInput)
	})
}

func (s *AuthCommandsTestSuite) TestLogin() {
	s.register("ana@example.com", "supersecret")

	s.Run("valid credentials issue a token", func() {
		result, err := s.commands.Login(s.ctx, commands.LoginInput{
			Email:    "ana@example.com",
			Password: "supersecret",
		})
		s.Require().NoError(err)
		s.NotEmpty(result.Token)
		s.Require().NotNil(result.User)
		s.Require().NotNil(result.User.LastLogin)
		s.Equal(testBase, result.User.LastLogin.UTC())

		claims, err := s.tokens.ValidateToken(result.Token)
		s.Require().NoError(err)
		s.Equal(result.User.ID, claims.UserID)
		s.Equal(user.RoleCustomer.String(), claims.Role)
	})

	s.Run("wrong password rejected", func() {
		_, err := s.commands.Login(s.ctx, commands.LoginInput{
			Email:    "ana@example.com",
			Password: "wrongpassword",
		})
		s.ErrorIs(err, commands.ErrInvalidCredentials)
	})

	s.Run("unknown email rejected", func() {
		_, err := s.commands.Login(s.ctx, commands.LoginInput{
			Email:    "ghost@example.com",
			Password: "supersecret",
		})
		s.ErrorIs(err, commands.ErrInvalidCredentials)
	})
}

func (s *AuthCommandsTestSuite) TestLoginInactiveUser() {
	view := s.register("ana@example.com", "supersecret")

	err := s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := tx.Users().FindByID(ctx, view.ID)
		if err != nil {
			return err
		}
		entity.Deactivate()
		return tx.Users().Update(ctx, entity)
	})
	s.Require().NoError(err)

	_, err = s.commands.Login(s.ctx, commands.LoginInput{
		Email:    "ana@example.com",
		Password: "supersecret",
	})
	s.ErrorIs(err, commands.ErrUserInactive)
}

func (s *AuthCommandsTestSuite) TestLogout() {
	s.register("ana@example.com", "supersecret")
	result, err := s.commands.Login(s.ctx, commands.LoginInput{
		Email:    "ana@example.com",
		Password: "supersecret",
	})
	s.Require().NoError(err)

	claims, err := s.tokens.ValidateToken(result.Token)
	s.Require().NoError(err)

	s.Require().NoError(s.commands.Logout(s.ctx, claims))

	revoked, err := s.revoker.IsRevoked(s.ctx, claims.ID)
	s.Require().NoError(err)
	s.True(revoked)
}
