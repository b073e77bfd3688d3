package pgstore

import (
	"context"
	"errors"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/infra"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationReads struct {
	pool *pgxpool.Pool
}

func NewReservationReads(pool *pgxpool.Pool) *ReservationReads {
	return &ReservationReads{pool: pool}
}

var _ queries.ReservationReadStore = (*ReservationReads)(nil)

const reservationViewQuery = `
	SELECT r.id, r.user_id, u.name, r.spot_id, s.name, s.owner_id, s.hourly_rate,
	       r.license_plate, r.estimated_entry_time, r.estimated_exit_time,
	       r.entry_time, r.exit_time, r.status, r.total_cost, r.created_at, r.updated_at
	FROM reservations r
	JOIN users u ON u.id = r.user_id
	JOIN spots s ON s.id = r.spot_id`

func (r *ReservationReads) FindView(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.pool.QueryRow(ctx, reservationViewQuery+` WHERE r.id = $1`, id)
	view, err := scanReservationView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "scanning reservation view", err)
	}
	return view, nil
}

func (r *ReservationReads) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationView, error) {
	return r.list(ctx, reservationViewQuery+` WHERE r.user_id = $1 ORDER BY r.created_at DESC`, userID)
}

func (r *ReservationReads) ListBySpotOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.ReservationView, error) {
	return r.list(ctx, reservationViewQuery+` WHERE s.owner_id = $1 ORDER BY r.created_at DESC`, ownerID)
}

func (r *ReservationReads) ListAll(ctx context.Context) ([]*queries.ReservationView, error) {
	return r.list(ctx, reservationViewQuery+` ORDER BY r.created_at DESC`)
}

func (r *ReservationReads) list(ctx context.Context, sql string, args ...any) ([]*queries.ReservationView, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "listing reservations", err)
	}
	defer rows.Close()

	views := make([]*queries.ReservationView, 0)
	for rows.Next() {
		view, err := scanReservationView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "scanning reservation view", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "listing reservations", err)
	}
	return views, nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var v queries.ReservationView
	err := row.Scan(&v.ID, &v.UserID, &v.UserName, &v.SpotID, &v.SpotName, &v.SpotOwnerID, &v.HourlyRate,
		&v.LicensePlate, &v.EstimatedEntryTime, &v.EstimatedExitTime,
		&v.EntryTime, &v.ExitTime, &v.Status, &v.TotalCost, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

type SpotReads struct {
	pool *pgxpool.Pool
}

func NewSpotReads(pool *pgxpool.Pool) *SpotReads {
	return &SpotReads{pool: pool}
}

var _ queries.SpotReadStore = (*SpotReads)(nil)

const spotViewQuery = `
	SELECT id, name, location, hourly_rate, type, status, owner_id, created_at, updated_at
	FROM spots`

func (r *SpotReads) FindView(ctx context.Context, id uuid.UUID) (*queries.SpotView, error) {
	var v queries.SpotView
	err := r.pool.QueryRow(ctx, spotViewQuery+` WHERE id = $1`, id).
		Scan(&v.ID, &v.Name, &v.Location, &v.HourlyRate, &v.Type, &v.Status, &v.OwnerID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "spot not found")
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "scanning spot view", err)
	}
	return &v, nil
}

func (r *SpotReads) ListAvailable(ctx context.Context) ([]*queries.SpotView, error) {
	return r.list(ctx, spotViewQuery+` WHERE status = 'available' ORDER BY name`)
}

func (r *SpotReads) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.SpotView, error) {
	return r.list(ctx, spotViewQuery+` WHERE owner_id = $1 ORDER BY name`, ownerID)
}

func (r *SpotReads) ListAll(ctx context.Context) ([]*queries.SpotView, error) {
	return r.list(ctx, spotViewQuery+` ORDER BY name`)
}

func (r *SpotReads) list(ctx context.Context, sql string, args ...any) ([]*queries.SpotView, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "listing spots", err)
	}
	defer rows.Close()

	views := make([]*queries.SpotView, 0)
	for rows.Next() {
		var v queries.SpotView
		if err := rows.Scan(&v.ID, &v.Name, &v.Location, &v.HourlyRate, &v.Type, &v.Status, &v.OwnerID, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "scanning spot view", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "listing spots", err)
	}
	return views, nil
}

type UserReads struct {
	pool *pgxpool.Pool
}

func NewUserReads(pool *pgxpool.Pool) *UserReads {
	return &UserReads{pool: pool}
}

var _ queries.UserReadStore = (*UserReads)(nil)

func (r *UserReads) FindView(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	var v queries.UserView
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, role, is_active, last_login, created_at
		FROM users WHERE id = $1`, id,
	).Scan(&v.ID, &v.Name, &v.Email, &v.Role, &v.IsActive, &v.LastLogin, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "user not found")
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "scanning user view", err)
	}
	return &v, nil
}

func (r *UserReads) ListAll(ctx context.Context) ([]*queries.UserView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, role, is_active, last_login, created_at
		FROM users ORDER BY email`)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "listing users", err)
	}
	defer rows.Close()

	views := make([]*queries.UserView, 0)
	for rows.Next() {
		var v queries.UserView
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Role, &v.IsActive, &v.LastLogin, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "scanning user view", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "listing users", err)
	}
	return views, nil
}

type VehicleReads struct {
	pool *pgxpool.Pool
}

func NewVehicleReads(pool *pgxpool.Pool) *VehicleReads {
	return &VehicleReads{pool: pool}
}

var _ queries.VehicleReadStore = (*VehicleReads)(nil)

func (r *VehicleReads) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.VehicleView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, plate, type, model, color, created_at
		FROM vehicles WHERE user_id = $1 ORDER BY plate`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "listing vehicles", err)
	}
	defer rows.Close()

	views := make([]*queries.VehicleView, 0)
	for rows.Next() {
		var v queries.VehicleView
		if err := rows.Scan(&v.ID, &v.UserID, &v.Plate, &v.Type, &v.Model, &v.Color, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "scanning vehicle view", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "listing vehicles", err)
	}
	return views, nil
}

func (r *VehicleReads) FindByPlate(ctx context.Context, plate string) (*queries.VehicleView, error) {
	var v queries.VehicleView
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, plate, type, model, color, created_at
		FROM vehicles WHERE plate = $1`, plate,
	).Scan(&v.ID, &v.UserID, &v.Plate, &v.Type, &v.Model, &v.Color, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "vehicle not found")
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "scanning vehicle view", err)
	}
	return &v, nil
}

type ReportReads struct {
	pool *pgxpool.Pool
}

func NewReportReads(pool *pgxpool.Pool) *ReportReads {
	return &ReportReads{pool: pool}
}

var _ queries.ReportReadStore = (*ReportReads)(nil)

func (r *ReportReads) IncomeByOwner(ctx context.Context, ownerID uuid.UUID, from, to time.Time, groupBy queries.GroupBy) ([]*queries.IncomeRow, error) {
	trunc := "day"
	if groupBy == queries.GroupByMonth {
		trunc = "month"
	}

	rows, err := r.pool.Query(ctx, `
		SELECT date_trunc($1, r.exit_time AT TIME ZONE 'UTC') AS bucket,
		       coalesce(sum(r.total_cost), 0),
		       count(*)
		FROM reservations r
		JOIN spots s ON s.id = r.spot_id
		WHERE s.owner_id = $2
		  AND r.status = 'completed'
		  AND r.total_cost IS NOT NULL
		  AND r.exit_time BETWEEN $3 AND $4
		GROUP BY bucket
		ORDER BY bucket`,
		trunc, ownerID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "aggregating income", err)
	}
	defer rows.Close()

	result := make([]*queries.IncomeRow, 0)
	for rows.Next() {
		var row queries.IncomeRow
		if err := rows.Scan(&row.Date, &row.Amount, &row.ReservationCount); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "scanning income row", err)
		}
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "aggregating income", err)
	}
	return result, nil
}
