//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/reservation"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/spot"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/user"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra/memstore"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/clock"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

var base = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type ReservationQueriesTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memstore.Store
	queries queries.ReservationQueries

	holder   shared.Actor
	owner    shared.Actor
	stranger shared.Actor
	admin    shared.Actor

	reservationID uuid.UUID
}

func (s *ReservationQueriesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New(clock.NewMockClock(base))
	s.queries = queries.NewReservationQueries(s.store.ReservationReads())

	s.holder = s.seedUser("ana@example.com", user.RoleCustomer)
	s.owner = s.seedUser("op@example.com", user.RoleOperator)
	s.stranger = s.seedUser("bob@example.com", user.RoleCustomer)
	s.admin = s.seedUser("admin@example.com", user.RoleAdmin)

	spotEntity, err := spot.NewSpot("A-01", "Level 1", 5000, "standard", s.owner.ID)
	s.Require().NoError(err)

	plate, err := reservation.NewLicensePlate("ABC-1234")
	s.Require().NoError(err)
	window, err := reservation.NewStayWindow(base.Add(time.Hour), base.Add(3*time.Hour))
	s.Require().NoError(err)
	entity := reservation.NewReservation(s.holder.ID, spotEntity.ID(), plate, window)
	s.reservationID = entity.ID()

	err = s.store.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Spots().Create(ctx, spotEntity); err != nil {
			return err
		}
		return tx.Reservations().Create(ctx, entity)
	})
	s.Require().NoError(err)
}

func TestReservationQueriesSuite(t *testing.T) {
	suite.Run(t, new(ReservationQueriesTestSuite))
}

func (s *ReservationQueriesTestSuite) seedUser(email string, role user.Role) shared.Actor {
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

func (s *ReservationQueriesTestSuite) TestGetByIDVisibility() {
	s.Run("holder sees it", func() {
		view, err := s.queries.GetByID(s.ctx, s.holder, s.reservationID)
		s.Require().NoError(err)
		s.Equal(s.holder.ID, view.UserID)
		s.Equal("A-01", view.SpotName)
		s.Equal(int64(5000), view.HourlyRate)
	})

	s.Run("spot owner sees it", func() {
		_, err := s.queries.GetByID(s.ctx, s.owner, s.reservationID)
		s.NoError(err)
	})

	s.Run("admin sees it", func() {
		_, err := s.queries.GetByID(s.ctx, s.admin, s.reservationID)
		s.NoError(err)
	})

	s.Run("stranger denied", func() {
		_, err := s.queries.GetByID(s.ctx, s.stranger, s.reservationID)
		s.ErrorIs(err, queries.ErrAccessDenied)
	})

	s.Run("unknown id", func() {
		_, err := s.queries.GetByID(s.ctx, s.admin, uuid.New())
		s.ErrorIs(err, queries.ErrReservationNotFound)
	})
}

func (s *ReservationQueriesTestSuite) TestListForActor() {
	s.Run("holder lists own reservations", func() {
		views, err := s.queries.ListForActor(s.ctx, s.holder)
		s.Require().NoError(err)
		s.Len(views, 1)
	})

	s.Run("operator lists reservations on own spots", func() {
		views, err := s.queries.ListForActor(s.ctx, s.owner)
		s.Require().NoError(err)
		s.Len(views, 1)
	})

	s.Run("stranger sees nothing", func() {
		views, err := s.queries.ListForActor(s.ctx, s.stranger)
		s.Require().NoError(err)
		s.Empty(views)
	})

	s.Run("admin sees the full ledger", func() {
		views, err := s.queries.ListForActor(s.ctx, s.admin)
		s.Require().NoError(err)
		s.Len(views, 1)
	})
}

func (s *ReservationQueriesTestSuite) TestTicket() {
	ticket, err := s.queries.Ticket(s.ctx, s.holder, s.reservationID)
	s.Require().NoError(err)

	s.Equal(s.reservationID, ticket.ReservationID)
	s.Equal("ABC-1234", ticket.LicensePlate)
	s.Equal("A-01", ticket.SpotName)
	// Two booked hours at 5000 each.
	s.Equal(int64(10000), ticket.EstimatedCost)

	_, err = s.queries.Ticket(s.ctx, s.stranger, s.reservationID)
	s.ErrorIs(err, queries.ErrAccessDenied)
}
