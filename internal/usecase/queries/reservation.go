package queries

import (
	"context"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/reservation"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/user"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/errs"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrAccessDenied        = errs.New("access denied")
)

type ReservationQueries interface {
	// GetByID enforces visibility: customers see their own reservations,
	// operators additionally those on their spots, admins everything.
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error)
	// GetByIDSystem skips visibility checks (internal read-after-write).
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListForActor(ctx context.Context, actor shared.Actor) ([]*ReservationView, error)
	Ticket(ctx context.Context, actor shared.Actor, id uuid.UUID) (*TicketView, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canSee(actor, view) {
		return nil, ErrAccessDenied
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindView(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return view, nil
}

// ListForActor is the "my reservations" query for customers, the
// "reservations on my spots" query for operators and the full ledger for
// admins.
func (q *reservationQueriesImpl) ListForActor(ctx context.Context, actor shared.Actor) ([]*ReservationView, error) {
	switch {
	case actor.IsAdmin():
		return q.store.ListAll(ctx)
	case actor.Role == user.RoleOperator:
		return q.store.ListBySpotOwner(ctx, actor.ID)
	default:
		return q.store.ListByUser(ctx, actor.ID)
	}
}

func (q *reservationQueriesImpl) Ticket(ctx context.Context, actor shared.Actor, id uuid.UUID) (*TicketView, error) {
	view, err := q.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	return &TicketView{
		ReservationID:      view.ID,
		UserName:           view.UserName,
		LicensePlate:       view.LicensePlate,
		SpotName:           view.SpotName,
		EntryTime:          view.EntryTime,
		EstimatedEntryTime: view.EstimatedEntryTime,
		EstimatedExitTime:  view.EstimatedExitTime,
		EstimatedCost:      reservation.EstimatedCost(view.EstimatedEntryTime, view.EstimatedExitTime, view.HourlyRate),
		Status:             view.Status,
	}, nil
}

func canSee(actor shared.Actor, view *ReservationView) bool {
	if actor.IsAdmin() {
		return true
	}
	return view.UserID == actor.ID || view.SpotOwnerID == actor.ID
}
