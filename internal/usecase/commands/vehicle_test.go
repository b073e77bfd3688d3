//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/user"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/vehicle"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra/memstore"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/clock"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/commands"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type VehicleCommandsTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memstore.Store
	reads    queries.VehicleQueries
	commands commands.VehicleCommands

	owner shared.Actor
	other shared.Actor
}

func (s *VehicleCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New(clock.NewMockClock(testBase))
	s.reads = queries.NewVehicleQueries(s.store.VehicleReads())
	s.commands = commands.NewVehicleCommands(s.store, s.reads)

	s.owner = s.seedActor("ana@example.com")
	s.other = s.seedActor("bob@example.com")
}

func TestVehicleCommandsSuite(t *testing.T) {
	suite.Run(t, new(VehicleCommandsTestSuite))
}

func (s *VehicleCommandsTestSuite) seedActor(email string) shared.Actor {
	addr, err := user.NewEmail(email)
	s.Require().NoError(err)
	entity, err := user.NewUser("Test User", addr, "hash", user.RoleCustomer)
	s.Require().NoError(err)

	err = s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, entity)
	})
	s.Require().NoError(err)

	return shared.Actor{ID: entity.ID(), Role: user.RoleCustomer}
}

func (s *VehicleCommandsTestSuite) TestRegister() {
	s.Run("normalizes the plate", func() {
		view, err := s.commands.Register(s.ctx, s.owner, commands.RegisterVehicleInput{
			Plate: " abc-1234 ",
			Type:  vehicle.TypeCar.String(),
			Model: "Corolla",
			Color: "red",
		})
		s.Require().NoError(err)
		s.Equal("ABC-1234", view.Plate)
		s.Equal(s.owner.ID, view.UserID)
	})

	s.Run("duplicate plate rejected across users", func() {
		_, err := s.commands.Register(s.ctx, s.other, commands.RegisterVehicleInput{
			Plate: "abc-1234",
			Type:  vehicle.TypeCar.String(),
		})
		s.ErrorIs(err, commands.ErrPlateAlreadyRegistered)
	})

	s.Run("invalid type rejected", func() {
		_, err := s.commands.Register(s.ctx, s.owner, commands.RegisterVehicleInput{
			Plate: "XYZ-9",
			Type:  "boat",
		})
		s.ErrorIs(err, commands.ErrInvalidVehicle)
	})
}

func (s *VehicleCommandsTestSuite) TestUpdate() {
	view, err := s.commands.Register(s.ctx, s.owner, commands.RegisterVehicleInput{
		Plate: "ABC-1234",
		Type:  vehicle.TypeCar.String(),
		Model: "Corolla",
		Color: "red",
	})
	s.Require().NoError(err)

	s.Run("owner updates details", func() {
		color := "blue"
		s.Require().NoError(s.commands.Update(s.ctx, s.owner, view.ID, commands.UpdateVehicleInput{Color: &color}))

		updated, err := s.reads.GetByPlate(s.ctx, "ABC-1234")
		s.Require().NoError(err)
		s.Equal("blue", updated.Color)
		s.Equal("Corolla", updated.Model)
	})

	s.Run("foreign user rejected", func() {
		color := "green"
		err := s.commands.Update(s.ctx, s.other, view.ID, commands.UpdateVehicleInput{Color: &color})
		s.ErrorIs(err, commands.ErrNotVehicleOwner)
	})

	s.Run("unknown vehicle rejected", func() {
		color := "green"
		err := s.commands.Update(s.ctx, s.owner, uuid.New(), commands.UpdateVehicleInput{Color: &color})
		s.ErrorIs(err, commands.ErrVehicleNotFound)
	})
}

func (s *VehicleCommandsTestSuite) TestDelete() {
	view, err := s.commands.Register(s.ctx, s.owner, commands.RegisterVehicleInput{
		Plate: "ABC-1234",
		Type:  vehicle.TypeMotorcycle.String(),
	})
	s.Require().NoError(err)

	s.ErrorIs(s.commands.Delete(s.ctx, s.other, view.ID), commands.ErrNotVehicleOwner)

	s.Require().NoError(s.commands.Delete(s.ctx, s.owner, view.ID))

	_, err = s.reads.GetByPlate(s.ctx, "ABC-1234")
	s.ErrorIs(err, queries.ErrVehicleNotFound)
}
