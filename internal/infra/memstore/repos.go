package memstore

import (
	"context"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/reservation"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/spot"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/user"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/vehicle"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/clock"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/shared"

	"github.com/google/uuid"
)

// txState is the staged copy of every table for one unit of work.
type txState struct {
	clock        clock.Clock
	users        map[uuid.UUID]userRecord
	spots        map[uuid.UUID]spotRecord
	reservations map[uuid.UUID]reservationRecord
	vehicles     map[uuid.UUID]vehicleRecord
}

func (st *txState) now() time.Time {
	return st.clock.Now()
}

type memTx struct {
	state *txState
}

var _ shared.Tx = (*memTx)(nil)

func (t *memTx) Users() shared.UserRepository               { return &userRepo{state: t.state} }
func (t *memTx) Spots() shared.SpotRepository               { return &spotRepo{state: t.state} }
func (t *memTx) Reservations() shared.ReservationRepository { return &reservationRepo{state: t.state} }
func (t *memTx) Vehicles() shared.VehicleRepository         { return &vehicleRepo{state: t.state} }

type userRepo struct {
	state *txState
}

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	for _, rec := range r.state.users {
		if rec.email.Value() == u.Email().Value() {
			return infra.NewRepoErr(infra.KindDuplicateKey, "email already registered")
		}
	}
	rec := userToRecord(u)
	rec.createdAt = r.state.now()
	rec.updatedAt = rec.createdAt
	r.state.users[rec.id] = rec
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	rec, ok := r.state.users[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "user not found")
	}
	return rec.toEntity(), nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, rec := range r.state.users {
		if rec.email.Value() == email {
			return rec.toEntity(), nil
		}
	}
	return nil, infra.NewRepoErr(infra.KindNotFound, "user not found")
}

func (r *userRepo) Update(_ context.Context, u *user.User) error {
	old, ok := r.state.users[u.ID()]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "user not found")
	}
	rec := userToRecord(u)
	rec.createdAt = old.createdAt
	rec.updatedAt = r.state.now()
	r.state.users[rec.id] = rec
	return nil
}

func (r *userRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.state.users[id]; !ok {
		return infra.NewRepoErr(infra.KindNotFound, "user not found")
	}
	delete(r.state.users, id)
	return nil
}

type spotRepo struct {
	state *txState
}

func (r *spotRepo) Create(_ context.Context, s *spot.Spot) error {
	rec := spotToRecord(s)
	rec.createdAt = r.state.now()
	rec.updatedAt = rec.createdAt
	r.state.spots[rec.id] = rec
	return nil
}

func (r *spotRepo) FindByID(_ context.Context, id uuid.UUID) (*spot.Spot, error) {
	rec, ok := r.state.spots[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "spot not found")
	}
	return rec.toEntity(), nil
}

func (r *spotRepo) Update(_ context.Context, s *spot.Spot) error {
	old, ok := r.state.spots[s.ID()]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "spot not found")
	}
	rec := spotToRecord(s)
	rec.createdAt = old.createdAt
	rec.updatedAt = r.state.now()
	r.state.spots[rec.id] = rec
	return nil
}

func (r *spotRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.state.spots[id]; !ok {
		return infra.NewRepoErr(infra.KindNotFound, "spot not found")
	}
	delete(r.state.spots, id)
	return nil
}

type reservationRepo struct {
	state *txState
}

func (r *reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	rec := reservationToRecord(res)
	rec.createdAt = r.state.now()
	rec.updatedAt = rec.createdAt
	r.state.reservations[rec.id] = rec
	return nil
}

func (r *reservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	rec, ok := r.state.reservations[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return rec.toEntity(), nil
}

func (r *reservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	old, ok := r.state.reservations[res.ID()]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	rec := reservationToRecord(res)
	rec.createdAt = old.createdAt
	rec.updatedAt = r.state.now()
	r.state.reservations[rec.id] = rec
	return nil
}

func (r *reservationRepo) CountOpenByUser(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, rec := range r.state.reservations {
		if rec.userID == userID && rec.status.IsOpen() {
			count++
		}
	}
	return count, nil
}

func (r *reservationRepo) HasOpenBySpot(_ context.Context, spotID uuid.UUID) (bool, error) {
	for _, rec := range r.state.reservations {
		if rec.spotID == spotID && rec.status.IsOpen() {
			return true, nil
		}
	}
	return false, nil
}

type vehicleRepo struct {
	state *txState
}

func (r *vehicleRepo) Create(_ context.Context, v *vehicle.Vehicle) error {
	for _, rec := range r.state.vehicles {
		if rec.plate == v.Plate() {
			return infra.NewRepoErr(infra.KindDuplicateKey, "plate already registered")
		}
	}
	rec := vehicleToRecord(v)
	rec.createdAt = r.state.now()
	rec.updatedAt = rec.createdAt
	r.state.vehicles[rec.id] = rec
	return nil
}

func (r *vehicleRepo) FindByID(_ context.Context, id uuid.UUID) (*vehicle.Vehicle, error) {
	rec, ok := r.state.vehicles[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "vehicle not found")
	}
	return rec.toEntity(), nil
}

func (r *vehicleRepo) FindByPlate(_ context.Context, plate string) (*vehicle.Vehicle, error) {
	for _, rec := range r.state.vehicles {
		if rec.plate == plate {
			return rec.toEntity(), nil
		}
	}
	return nil, infra.NewRepoErr(infra.KindNotFound, "vehicle not found")
}

func (r *vehicleRepo) Update(_ context.Context, v *vehicle.Vehicle) error {
	old, ok := r.state.vehicles[v.ID()]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "vehicle not found")
	}
	rec := vehicleToRecord(v)
	rec.createdAt = old.createdAt
	rec.updatedAt = r.state.now()
	r.state.vehicles[rec.id] = rec
	return nil
}

func (r *vehicleRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.state.vehicles[id]; !ok {
		return infra.NewRepoErr(infra.KindNotFound, "vehicle not found")
	}
	delete(r.state.vehicles, id)
	return nil
}
