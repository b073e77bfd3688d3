package shared

import (
	"context"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/reservation"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/spot"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/user"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/vehicle"

	"github.com/google/uuid"
)

// Actor identifies who is executing a command. Authorization inside
// commands is ownership-based; route-level role gating happens in the
// middleware.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Update(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SpotRepository interface {
	Create(ctx context.Context, s *spot.Spot) error
	FindByID(ctx context.Context, id uuid.UUID) (*spot.Spot, error)
	Update(ctx context.Context, s *spot.Spot) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReservationRepository interface {
	Create(ctx context.Context, r *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	Update(ctx context.Context, r *reservation.Reservation) error
	// CountOpenByUser counts pending+active reservations held by a user.
	CountOpenByUser(ctx context.Context, userID uuid.UUID) (int, error)
	// HasOpenBySpot reports whether any pending/active reservation
	// references the spot (delete guard).
	HasOpenBySpot(ctx context.Context, spotID uuid.UUID) (bool, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, v *vehicle.Vehicle) error
	FindByID(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error)
	FindByPlate(ctx context.Context, plate string) (*vehicle.Vehicle, error)
	Update(ctx context.Context, v *vehicle.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Tx exposes the repositories bound to one atomic unit.
type Tx interface {
	Users() UserRepository
	Spots() SpotRepository
	Reservations() ReservationRepository
	Vehicles() VehicleRepository
}

// UnitOfWork runs fn atomically: every repository call inside fn either
// commits as a whole or leaves no mutation behind. Failed business checks
// abort with no partial state, which is what keeps the ledger/spot status
// invariants intact.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// TokenRevoker is the server-side logout denylist.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
