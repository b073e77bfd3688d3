//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/spot"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/user"
	"github.com/SrRalo/park-pal-reserva-facil/internal/events"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra/memstore"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/clock"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/config"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/commands"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type UserCommandsTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memstore.Store
	reads    queries.UserQueries
	commands commands.UserCommands

	admin    shared.Actor
	customer shared.Actor
}

func (s *UserCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New(clock.NewMockClock(testBase))
	s.reads = queries.NewUserQueries(s.store.UserReads())
	s.commands = commands.NewUserCommands(s.store, s.reads)

	s.admin = s.seedActor("admin@example.com", user.RoleAdmin)
	s.customer = s.seedActor("ana@example.com", user.RoleCustomer)
}

func TestUserCommandsSuite(t *testing.T) {
	suite.Run(t, new(UserCommandsTestSuite))
}

func (s *UserCommandsTestSuite) seedActor(email string, role user.Role) shared.Actor {
	addr, err := user.NewEmail(email)
	s.Require().NoError(err)
	entity, err := user.NewUser("Test User", addr, "hash", role)
	s.Require().NoError(err)

	err = s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, entity)
	})
	s.Require().NoError(err)

	return shared.Actor{ID: entity.ID(), Role: role}
}

func (s *UserCommandsTestSuite) TestChangeRole() {
	s.Run("admin promotes a customer", func() {
		view, err := s.commands.ChangeRole(s.ctx, s.admin, s.customer.ID, "operator")
		s.Require().NoError(err)
		s.Equal(user.RoleOperator.String(), view.Role)
	})

	s.Run("non admin rejected", func() {
		_, err := s.commands.ChangeRole(s.ctx, s.customer, s.admin.ID, "customer")
		s.ErrorIs(err, queries.ErrAccessDenied)
	})

	s.Run("admin cannot change own role", func() {
		_, err := s.commands.ChangeRole(s.ctx, s.admin, s.admin.ID, "customer")
		s.ErrorIs(err, commands.ErrCannotEditSelf)
	})

	s.Run("invalid role rejected", func() {
		_, err := s.commands.ChangeRole(s.ctx, s.admin, s.customer.ID, "root")
		s.ErrorIs(err, commands.ErrInvalidUserInput)
	})

	s.Run("unknown user rejected", func() {
		_, err := s.commands.ChangeRole(s.ctx, s.admin, uuid.New(), "operator")
		s.ErrorIs(err, commands.ErrUserNotFound)
	})
}

func (s *UserCommandsTestSuite) TestActivation() {
	s.Require().NoError(s.commands.Deactivate(s.ctx, s.admin, s.customer.ID))

	view, err := s.reads.GetCurrentUser(s.ctx, s.customer.ID)
	s.Require().NoError(err)
	s.False(view.IsActive)

	s.Require().NoError(s.commands.Activate(s.ctx, s.admin, s.customer.ID))

	view, err = s.reads.GetCurrentUser(s.ctx, s.customer.ID)
	s.Require().NoError(err)
	s.True(view.IsActive)

	s.ErrorIs(s.commands.Deactivate(s.ctx, s.admin, s.admin.ID), commands.ErrCannotEditSelf)
}

func (s *UserCommandsTestSuite) TestDelete() {
	s.Run("refuses while reservations are open", func() {
		operator := s.seedActor("op@example.com", user.RoleOperator)

		spotEntity, err := spot.NewSpot("A-01", "Level 1", 5000, "standard", operator.ID)
		s.Require().NoError(err)
		err = s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Spots().Create(ctx, spotEntity)
		})
		s.Require().NoError(err)

		clk := clock.NewMockClock(testBase)
		reservations := commands.NewReservationCommands(
			s.store,
			queries.NewReservationQueries(s.store.ReservationReads()),
			events.NewBus(),
			clk,
			config.NewTestConfig(),
		)
		view, err := reservations.Create(s.ctx, s.customer, commands.CreateReservationInput{
			SpotID:             spotEntity.ID(),
			LicensePlate:       "ABC-1234",
			EstimatedEntryTime: testBase.Add(time.Hour),
			EstimatedExitTime:  testBase.Add(2 * time.Hour),
		})
		s.Require().NoError(err)

		s.ErrorIs(s.commands.Delete(s.ctx, s.admin, s.customer.ID), commands.ErrUserHasOpenItems)

		s.Require().NoError(reservations.Cancel(s.ctx, s.customer, view.ID))
		s.Require().NoError(s.commands.Delete(s.ctx, s.admin, s.customer.ID))

		_, err = s.reads.GetCurrentUser(s.ctx, s.customer.ID)
		s.ErrorIs(err, queries.ErrUserNotFound)
	})

	s.Run("non admin rejected", func() {
		s.ErrorIs(s.commands.Delete(s.ctx, s.customer, s.admin.ID), queries.ErrAccessDenied)
	})
}
