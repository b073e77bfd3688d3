// Package memstore keeps the whole ledger in process memory behind the
// same ports the Postgres store implements. It is the default driver and
// the substrate the usecase tests run against.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/reservation"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/spot"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/user"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/vehicle"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/clock"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/shared"

	"github.com/google/uuid"
)

type userRecord struct {
	id           uuid.UUID
	name         string
	email        user.Email
	passwordHash string
	role         user.Role
	isActive     bool
	lastLogin    *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

type spotRecord struct {
	id         uuid.UUID
	name       string
	location   string
	hourlyRate int64
	spotType   string
	status     spot.Status
	ownerID    uuid.UUID
	createdAt  time.Time
	updatedAt  time.Time
}

type reservationRecord struct {
	id           uuid.UUID
	userID       uuid.UUID
	spotID       uuid.UUID
	licensePlate reservation.LicensePlate
	window       reservation.StayWindow
	entryTime    *time.Time
	exitTime     *time.Time
	status       reservation.Status
	totalCost    *int64
	createdAt    time.Time
	updatedAt    time.Time
}

type vehicleRecord struct {
	id        uuid.UUID
	userID    uuid.UUID
	plate     string
	vType     vehicle.Type
	model     string
	color     string
	createdAt time.Time
	updatedAt time.Time
}

// Store holds all tables under one mutex. Transactions run against a
// cloned state that replaces the live one only when the closure succeeds,
// so a failed business check leaves nothing behind.
type Store struct {
	mu           sync.RWMutex
	clock        clock.Clock
	users        map[uuid.UUID]userRecord
	spots        map[uuid.UUID]spotRecord
	reservations map[uuid.UUID]reservationRecord
	vehicles     map[uuid.UUID]vehicleRecord
}

func New(clk clock.Clock) *Store {
	return &Store{
		clock:        clk,
		users:        make(map[uuid.UUID]userRecord),
		spots:        make(map[uuid.UUID]spotRecord),
		reservations: make(map[uuid.UUID]reservationRecord),
		vehicles:     make(map[uuid.UUID]vehicleRecord),
	}
}

var _ shared.UnitOfWork = (*Store)(nil)

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := &txState{
		clock:        s.clock,
		users:        cloneTable(s.users),
		spots:        cloneTable(s.spots),
		reservations: cloneTable(s.reservations),
		vehicles:     cloneTable(s.vehicles),
	}

	if err := fn(ctx, &memTx{state: state}); err != nil {
		return err
	}

	s.users = state.users
	s.spots = state.spots
	s.reservations = state.reservations
	s.vehicles = state.vehicles
	return nil
}

func cloneTable[R any](src map[uuid.UUID]R) map[uuid.UUID]R {
	dst := make(map[uuid.UUID]R, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Entity <-> record conversion. Records hold value objects directly, so
// reconstruction never re-validates.

func userToRecord(u *user.User) userRecord {
	return userRecord{
		id:           u.ID(),
		name:         u.Name(),
		email:        u.Email(),
		passwordHash: u.PasswordHash(),
		role:         u.Role(),
		isActive:     u.IsActive(),
		lastLogin:    u.LastLogin(),
		createdAt:    u.CreatedAt(),
		updatedAt:    u.UpdatedAt(),
	}
}

func (r userRecord) toEntity() *user.User {
	return user.Reconstruct(r.id, r.name, r.email, r.passwordHash, r.role, r.isActive, r.lastLogin, r.createdAt, r.updatedAt)
}

func spotToRecord(s *spot.Spot) spotRecord {
	return spotRecord{
		id:         s.ID(),
		name:       s.Name(),
		location:   s.Location(),
		hourlyRate: s.HourlyRate(),
		spotType:   s.Type(),
		status:     s.Status(),
		ownerID:    s.OwnerID(),
		createdAt:  s.CreatedAt(),
		updatedAt:  s.UpdatedAt(),
	}
}

func (r spotRecord) toEntity() *spot.Spot {
	return spot.Reconstruct(r.id, r.name, r.location, r.hourlyRate, r.spotType, r.status, r.ownerID, r.createdAt, r.updatedAt)
}

func reservationToRecord(res *reservation.Reservation) reservationRecord {
	return reservationRecord{
		id:           res.ID(),
		userID:       res.UserID(),
		spotID:       res.SpotID(),
		licensePlate: res.LicensePlate(),
		window:       res.Window(),
		entryTime:    res.EntryTime(),
		exitTime:     res.ExitTime(),
		status:       res.Status(),
		totalCost:    res.TotalCost(),
		createdAt:    res.CreatedAt(),
		updatedAt:    res.UpdatedAt(),
	}
}

func (r reservationRecord) toEntity() *reservation.Reservation {
	return reservation.Reconstruct(
		r.id, r.userID, r.spotID,
		r.licensePlate, r.window,
		r.entryTime, r.exitTime,
		r.status, r.totalCost,
		r.createdAt, r.updatedAt,
	)
}

func vehicleToRecord(v *vehicle.Vehicle) vehicleRecord {
	return vehicleRecord{
		id:        v.ID(),
		userID:    v.UserID(),
		plate:     v.Plate(),
		vType:     v.Type(),
		model:     v.Model(),
		color:     v.Color(),
		createdAt: v.CreatedAt(),
		updatedAt: v.UpdatedAt(),
	}
}

func (r vehicleRecord) toEntity() *vehicle.Vehicle {
	return vehicle.Reconstruct(r.id, r.userID, r.plate, r.vType, r.model, r.color, r.createdAt, r.updatedAt)
}
