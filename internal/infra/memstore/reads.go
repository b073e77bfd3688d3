package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/spot"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"

	"github.com/google/uuid"
)

// The read-store ports overlap in method names, so each gets a thin
// adapter over the shared Store.

type ReservationReads struct{ s *Store }
type SpotReads struct{ s *Store }
type UserReads struct{ s *Store }
type VehicleReads struct{ s *Store }
type ReportReads struct{ s *Store }

var (
	_ queries.ReservationReadStore = ReservationReads{}
	_ queries.SpotReadStore        = SpotReads{}
	_ queries.UserReadStore        = UserReads{}
	_ queries.VehicleReadStore     = VehicleReads{}
	_ queries.ReportReadStore      = ReportReads{}
)

func (s *Store) ReservationReads() ReservationReads { return ReservationReads{s: s} }
func (s *Store) SpotReads() SpotReads               { return SpotReads{s: s} }
func (s *Store) UserReads() UserReads               { return UserReads{s: s} }
func (s *Store) VehicleReads() VehicleReads         { return VehicleReads{s: s} }
func (s *Store) ReportReads() ReportReads           { return ReportReads{s: s} }

func (r ReservationReads) FindView(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.reservations[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return r.s.reservationView(rec), nil
}

func (r ReservationReads) ListByUser(_ context.Context, userID uuid.UUID) ([]*queries.ReservationView, error) {
	return r.s.listReservations(func(rec reservationRecord) bool {
		return rec.userID == userID
	}), nil
}

func (r ReservationReads) ListBySpotOwner(_ context.Context, ownerID uuid.UUID) ([]*queries.ReservationView, error) {
	return r.s.listReservations(func(rec reservationRecord) bool {
		spotRec, ok := r.s.spots[rec.spotID]
		return ok && spotRec.ownerID == ownerID
	}), nil
}

func (r ReservationReads) ListAll(_ context.Context) ([]*queries.ReservationView, error) {
	return r.s.listReservations(func(reservationRecord) bool { return true }), nil
}

func (s *Store) listReservations(match func(reservationRecord) bool) []*queries.ReservationView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]*queries.ReservationView, 0)
	for _, rec := range s.reservations {
		if match(rec) {
			views = append(views, s.reservationView(rec))
		}
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views
}

// reservationView joins user and spot data. Caller holds the lock.
func (s *Store) reservationView(rec reservationRecord) *queries.ReservationView {
	view := &queries.ReservationView{
		ID:                 rec.id,
		UserID:             rec.userID,
		SpotID:             rec.spotID,
		LicensePlate:       rec.licensePlate.Value(),
		EstimatedEntryTime: rec.window.Entry(),
		EstimatedExitTime:  rec.window.Exit(),
		EntryTime:          rec.entryTime,
		ExitTime:           rec.exitTime,
		Status:             rec.status.String(),
		TotalCost:          rec.totalCost,
		CreatedAt:          rec.createdAt,
		UpdatedAt:          rec.updatedAt,
	}
	if userRec, ok := s.users[rec.userID]; ok {
		view.UserName = userRec.name
	}
	if spotRec, ok := s.spots[rec.spotID]; ok {
		view.SpotName = spotRec.name
		view.SpotOwnerID = spotRec.ownerID
		view.HourlyRate = spotRec.hourlyRate
	}
	return view
}

func (r SpotReads) FindView(_ context.Context, id uuid.UUID) (*queries.SpotView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.spots[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "spot not found")
	}
	return spotView(rec), nil
}

func (r SpotReads) ListAvailable(_ context.Context) ([]*queries.SpotView, error) {
	return r.s.listSpots(func(rec spotRecord) bool { return rec.status == spot.StatusAvailable }), nil
}

func (r SpotReads) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*queries.SpotView, error) {
	return r.s.listSpots(func(rec spotRecord) bool { return rec.ownerID == ownerID }), nil
}

func (r SpotReads) ListAll(_ context.Context) ([]*queries.SpotView, error) {
	return r.s.listSpots(func(spotRecord) bool { return true }), nil
}

func (s *Store) listSpots(match func(spotRecord) bool) []*queries.SpotView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]*queries.SpotView, 0)
	for _, rec := range s.spots {
		if match(rec) {
			views = append(views, spotView(rec))
		}
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Name < views[j].Name })
	return views
}

func spotView(rec spotRecord) *queries.SpotView {
	return &queries.SpotView{
		ID:         rec.id,
		Name:       rec.name,
		Location:   rec.location,
		HourlyRate: rec.hourlyRate,
		Type:       rec.spotType,
		Status:     rec.status.String(),
		OwnerID:    rec.ownerID,
		CreatedAt:  rec.createdAt,
		UpdatedAt:  rec.updatedAt,
	}
}

func (r UserReads) FindView(_ context.Context, id uuid.UUID) (*queries.UserView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.users[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "user not found")
	}
	return userView(rec), nil
}

func (r UserReads) ListAll(_ context.Context) ([]*queries.UserView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	views := make([]*queries.UserView, 0, len(r.s.users))
	for _, rec := range r.s.users {
		views = append(views, userView(rec))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Email < views[j].Email })
	return views, nil
}

func userView(rec userRecord) *queries.UserView {
	return &queries.UserView{
		ID:        rec.id,
		Name:      rec.name,
		Email:     rec.email.Value(),
		Role:      rec.role.String(),
		IsActive:  rec.isActive,
		LastLogin: rec.lastLogin,
		CreatedAt: rec.createdAt,
	}
}

func (r VehicleReads) ListByUser(_ context.Context, userID uuid.UUID) ([]*queries.VehicleView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	views := make([]*queries.VehicleView, 0)
	for _, rec := range r.s.vehicles {
		if rec.userID == userID {
			views = append(views, vehicleView(rec))
		}
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Plate < views[j].Plate })
	return views, nil
}

func (r VehicleReads) FindByPlate(_ context.Context, plate string) (*queries.VehicleView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rec := range r.s.vehicles {
		if rec.plate == plate {
			return vehicleView(rec), nil
		}
	}
	return nil, infra.NewRepoErr(infra.KindNotFound, "vehicle not found")
}

func vehicleView(rec vehicleRecord) *queries.VehicleView {
	return &queries.VehicleView{
		ID:        rec.id,
		UserID:    rec.userID,
		Plate:     rec.plate,
		Type:      rec.vType.String(),
		Model:     rec.model,
		Color:     rec.color,
		CreatedAt: rec.createdAt,
	}
}

// IncomeByOwner walks completed, billed reservations on the owner's spots
// and buckets them by exit date.
func (r ReportReads) IncomeByOwner(_ context.Context, ownerID uuid.UUID, from, to time.Time, groupBy queries.GroupBy) ([]*queries.IncomeRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	buckets := make(map[time.Time]*queries.IncomeRow)
	for _, rec := range r.s.reservations {
		if rec.totalCost == nil || rec.exitTime == nil || !rec.status.IsTerminal() {
			continue
		}
		spotRec, ok := r.s.spots[rec.spotID]
		if !ok || spotRec.ownerID != ownerID {
			continue
		}
		exit := *rec.exitTime
		if exit.Before(from) || exit.After(to) {
			continue
		}

		key := bucketDate(exit, groupBy)
		row, ok := buckets[key]
		if !ok {
			row = &queries.IncomeRow{Date: key}
			buckets[key] = row
		}
		row.Amount += *rec.totalCost
		row.ReservationCount++
	}

	rows := make([]*queries.IncomeRow, 0, len(buckets))
	for _, row := range buckets {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows, nil
}

func bucketDate(t time.Time, groupBy queries.GroupBy) time.Time {
	t = t.UTC()
	if groupBy == queries.GroupByMonth {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
