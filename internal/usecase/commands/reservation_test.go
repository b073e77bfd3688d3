//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/reservation"
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

var testBase = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type ReservationCommandsTestSuite struct {
	suite.Suite
	ctx       context.Context
	clock     *clock.MockClock
	store     *memstore.Store
	spotReads queries.SpotQueries
	commands  commands.ReservationCommands

	customer shared.Actor
	operator shared.Actor
	admin    shared.Actor
	spotID   uuid.UUID
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewMockClock(testBase)
	s.store = memstore.New(s.clock)
	s.spotReads = queries.NewSpotQueries(s.store.SpotReads())

	reads := queries.NewReservationQueries(s.store.ReservationReads())
	s.commands = commands.NewReservationCommands(s.store, reads, events.NewBus(), s.clock, config.NewTestConfig())

	s.customer = s.seedUser("ana@example.com", user.RoleCustomer)
	s.operator = s.seedUser("op@example.com", user.RoleOperator)
	s.admin = s.seedUser("admin@example.com", user.RoleAdmin)
	s.spotID = s.seedSpot("A-01", s.operator.ID, 5000)
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) seedUser(email string, role user.Role) shared.Actor {
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

func (s *ReservationCommandsTestSuite) seedSpot(name string, ownerID uuid.UUID, rate int64) uuid.UUID {
	entity, err := spot.NewSpot(name, "Level 1", rate, "standard", ownerID)
	s.Require().NoError(err)

	err = s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Spots().Create(ctx, entity)
	})
	s.Require().NoError(err)

	return entity.ID()
}

func (s *ReservationCommandsTestSuite) createReservation(spotID uuid.UUID) *queries.ReservationView {
	view, err := s.commands.Create(s.ctx, s.customer, commands.CreateReservationInput{
		SpotID:             spotID,
		LicensePlate:       "ABC-1234",
		EstimatedEntryTime: testBase.Add(time.Hour),
		EstimatedExitTime:  testBase.Add(3 * time.Hour),
	})
	s.Require().NoError(err)
	return view
}

func (s *ReservationCommandsTestSuite) spotStatus(id uuid.UUID) string {
	view, err := s.spotReads.GetByID(s.ctx, id)
	s.Require().NoError(err)
	return view.Status
}

func (s *ReservationCommandsTestSuite) TestCreate() {
	s.Run("reserves the spot", func() {
		view := s.createReservation(s.spotID)

		s.Equal(reservation.StatusPending.String(), view.Status)
		s.Equal("ABC-1234", view.LicensePlate)
		s.Equal(s.customer.ID, view.UserID)
		s.Equal(spot.StatusReserved.String(), s.spotStatus(s.spotID))
	})

	s.Run("rejects an already reserved spot", func() {
		_, err := s.commands.Create(s.ctx, s.customer, commands.CreateReservationInput{
			SpotID:             s.spotID,
			LicensePlate:       "XYZ-9",
			EstimatedEntryTime: testBase.Add(time.Hour),
			EstimatedExitTime:  testBase.Add(2 * time.Hour),
		})
		s.ErrorIs(err, commands.ErrSpotUnavailable)
	})

	s.Run("rejects an unknown spot", func() {
		_, err := s.commands.Create(s.ctx, s.customer, commands.CreateReservationInput{
			SpotID:             uuid.New(),
			LicensePlate:       "XYZ-9",
			EstimatedEntryTime: testBase.Add(time.Hour),
			EstimatedExitTime:  testBase.Add(2 * time.Hour),
		})
		s.ErrorIs(err, commands.ErrSpotNotFound)
	})

	s.Run("rejects an inverted window", func() {
		_, err := s.commands.Create(s.ctx, s.customer, commands.CreateReservationInput{
			SpotID:             s.spotID,
			LicensePlate:       "XYZ-9",
			EstimatedEntryTime: testBase.Add(2 * time.Hour),
			EstimatedExitTime:  testBase.Add(time.Hour),
		})
		s.ErrorIs(err, commands.ErrInvalidStayWindow)
	})

	s.Run("rejects an empty plate", func() {
		_, err := s.commands.Create(s.ctx, s.customer, commands.CreateReservationInput{
			SpotID:             s.spotID,
			LicensePlate:       "   ",
			EstimatedEntryTime: testBase.Add(time.Hour),
			EstimatedExitTime:  testBase.Add(2 * time.Hour),
		})
		s.ErrorIs(err, commands.ErrInvalidLicensePlate)
	})
}

func (s *ReservationCommandsTestSuite) TestCreateLimit() {
	for i := 0; i < 3; i++ {
		id := s.seedSpot("B-0"+string(rune('1'+i)), s.operator.ID, 5000)
		s.createReservation(id)
	}

	extraSpot := s.seedSpot("C-01", s.operator.ID, 5000)
	_, err := s.commands.Create(s.ctx, s.customer, commands.CreateReservationInput{
		SpotID:             extraSpot,
		LicensePlate:       "ABC-1234",
		EstimatedEntryTime: testBase.Add(time.Hour),
		EstimatedExitTime:  testBase.Add(2 * time.Hour),
	})
	s.ErrorIs(err, commands.ErrReservationLimitExceeded)

	// The failed attempt must leave the extra spot untouched.
	s.Equal(spot.StatusAvailable.String(), s.spotStatus(extraSpot))
}

func (s *ReservationCommandsTestSuite) TestLifecycle() {
	created := s.createReservation(s.spotID)

	entered, err := s.commands.RegisterEntry(s.ctx, s.operator, created.ID)
	s.Require().NoError(err)
	s.Equal(reservation.StatusActive.String(), entered.Status)
	s.Require().NotNil(entered.EntryTime)
	s.Equal(testBase, entered.EntryTime.UTC())
	s.Equal(spot.StatusOccupied.String(), s.spotStatus(s.spotID))

	s.clock.Add(2 * time.Hour)

	exited, cost, err := s.commands.RegisterExit(s.ctx, s.operator, created.ID)
	s.Require().NoError(err)
	s.Equal(int64(10000), cost)
	s.Equal(reservation.StatusCompleted.String(), exited.Status)
	s.Require().NotNil(exited.TotalCost)
	s.Equal(int64(10000), *exited.TotalCost)
	s.Equal(spot.StatusAvailable.String(), s.spotStatus(s.spotID))
}

func (s *ReservationCommandsTestSuite) TestRegisterEntry() {
	created := s.createReservation(s.spotID)

	s.Run("foreign operator rejected", func() {
		other := s.seedUser("other-op@example.com", user.RoleOperator)
		_, err := s.commands.RegisterEntry(s.ctx, other, created.ID)
		s.ErrorIs(err, commands.ErrNotSpotOwner)
	})

	s.Run("admin may register on any spot", func() {
		_, err := s.commands.RegisterEntry(s.ctx, s.admin, created.ID)
		s.NoError(err)
	})

	s.Run("second entry rejected", func() {
		_, err := s.commands.RegisterEntry(s.ctx, s.operator, created.ID)
		s.ErrorIs(err, commands.ErrEntryNotAllowed)
	})
}

func (s *ReservationCommandsTestSuite) TestRegisterExit() {
	created := s.createReservation(s.spotID)

	s.Run("pending cannot exit", func() {
		_, _, err := s.commands.RegisterExit(s.ctx, s.operator, created.ID)
		s.ErrorIs(err, commands.ErrExitNotAllowed)
	})

	s.Run("short stays bill the elapsed fraction", func() {
		_, err := s.commands.RegisterEntry(s.ctx, s.operator, created.ID)
		s.Require().NoError(err)

		s.clock.Add(12 * time.Minute)
		_, cost, err := s.commands.RegisterExit(s.ctx, s.operator, created.ID)
		s.Require().NoError(err)
		s.Equal(int64(1000), cost)
	})
}

func (s *ReservationCommandsTestSuite) TestCancel() {
	s.Run("holder cancels a pending reservation", func() {
		created := s.createReservation(s.spotID)

		s.Require().NoError(s.commands.Cancel(s.ctx, s.customer, created.ID))
		s.Equal(spot.StatusAvailable.String(), s.spotStatus(s.spotID))

		view, err := queries.NewReservationQueries(s.store.ReservationReads()).GetByIDSystem(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Equal(reservation.StatusCancelled.String(), view.Status)
		s.Nil(view.TotalCost)
	})

	s.Run("foreign customer rejected", func() {
		created := s.createReservation(s.spotID)
		other := s.seedUser("mallory@example.com", user.RoleCustomer)

		s.ErrorIs(s.commands.Cancel(s.ctx, other, created.ID), commands.ErrNotReservationOwner)

		s.Require().NoError(s.commands.Cancel(s.ctx, s.customer, created.ID))
	})

	s.Run("active cannot be cancelled", func() {
		created := s.createReservation(s.spotID)
		_, err := s.commands.RegisterEntry(s.ctx, s.operator, created.ID)
		s.Require().NoError(err)

		s.ErrorIs(s.commands.Cancel(s.ctx, s.customer, created.ID), commands.ErrNotCancellable)
	})
}

func (s *ReservationCommandsTestSuite) TestComplete() {
	created := s.createReservation(s.spotID)

	s.Run("non admin rejected", func() {
		s.ErrorIs(s.commands.Complete(s.ctx, s.operator, created.ID), queries.ErrAccessDenied)
	})

	s.Run("admin closes without billing", func() {
		s.Require().NoError(s.commands.Complete(s.ctx, s.admin, created.ID))
		s.Equal(spot.StatusAvailable.String(), s.spotStatus(s.spotID))

		view, err := queries.NewReservationQueries(s.store.ReservationReads()).GetByIDSystem(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Equal(reservation.StatusCompleted.String(), view.Status)
		s.Nil(view.TotalCost)
	})

	s.Run("terminal reservation rejected", func() {
		s.ErrorIs(s.commands.Complete(s.ctx, s.admin, created.ID), commands.ErrAlreadyFinished)
	})
}
