package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotPending       = errors.New("reservation is not pending")
	ErrNotActive        = errors.New("reservation is not active")
	ErrAlreadyTerminal  = errors.New("reservation is already completed or cancelled")
	ErrEntryNotRecorded = errors.New("entry time has not been recorded")
)

// Reservation is the ledger entry for one stay on one spot.
//
// State machine (no backward transitions):
//
//	pending --Cancel--> cancelled
//	pending --RegisterEntry--> active
//	active  --RegisterExit--> completed (totalCost set)
//	pending/active --Complete--> completed (admin override, no cost)
type Reservation struct {
	id           uuid.UUID
	userID       uuid.UUID
	spotID       uuid.UUID
	licensePlate LicensePlate
	window       StayWindow
	entryTime    *time.Time
	exitTime     *time.Time
	status       Status
	totalCost    *int64
	createdAt    time.Time
	updatedAt    time.Time
}

func NewReservation(userID, spotID uuid.UUID, plate LicensePlate, window StayWindow) *Reservation {
	return &Reservation{
		id:           uuid.New(),
		userID:       userID,
		spotID:       spotID,
		licensePlate: plate,
		window:       window,
		status:       StatusPending,
	}
}

func Reconstruct(
	id, userID, spotID uuid.UUID,
	plate LicensePlate,
	window StayWindow,
	entryTime, exitTime *time.Time,
	status Status,
	totalCost *int64,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:           id,
		userID:       userID,
		spotID:       spotID,
		licensePlate: plate,
		window:       window,
		entryTime:    entryTime,
		exitTime:     exitTime,
		status:       status,
		totalCost:    totalCost,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Cancel is only valid while the reservation is pending.
func (r *Reservation) Cancel() error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	r.status = StatusCancelled
	return nil
}

// RegisterEntry records the real arrival and activates the reservation.
func (r *Reservation) RegisterEntry(now time.Time) error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	t := now
	r.entryTime = &t
	r.status = StatusActive
	return nil
}

// RegisterExit bills the elapsed stay and completes the reservation.
func (r *Reservation) RegisterExit(now time.Time, hourlyRate int64) (int64, error) {
	if r.status != StatusActive {
		return 0, ErrNotActive
	}
	if r.entryTime == nil {
		return 0, ErrEntryNotRecorded
	}

	cost := FinalCost(*r.entryTime, now, hourlyRate)

	t := now
	r.exitTime = &t
	r.totalCost = &cost
	r.status = StatusCompleted
	return cost, nil
}

// Complete is the administrative override: it closes a pending or active
// reservation without computing a cost.
func (r *Reservation) Complete() error {
	if r.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	r.status = StatusCompleted
	return nil
}

// EstimatedCost prices the booked window at the given rate.
func (r *Reservation) EstimatedCost(hourlyRate int64) int64 {
	return EstimatedCost(r.window.Entry(), r.window.Exit(), hourlyRate)
}

func (r *Reservation) IsOpen() bool {
	return r.status.IsOpen()
}

func (r *Reservation) ID() uuid.UUID             { return r.id }
func (r *Reservation) UserID() uuid.UUID         { return r.userID }
func (r *Reservation) SpotID() uuid.UUID         { return r.spotID }
func (r *Reservation) LicensePlate() LicensePlate { return r.licensePlate }
func (r *Reservation) Window() StayWindow        { return r.window }
func (r *Reservation) EntryTime() *time.Time     { return r.entryTime }
func (r *Reservation) ExitTime() *time.Time      { return r.exitTime }
func (r *Reservation) Status() Status            { return r.status }
func (r *Reservation) TotalCost() *int64         { return r.totalCost }
func (r *Reservation) CreatedAt() time.Time      { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time      { return r.updatedAt }
