package pgstore

import (
	"context"
	"errors"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/reservation"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/spot"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/user"
	"github.com/SrRalo/park-pal-reserva-facil/internal/domain/vehicle"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type userRepo struct {
	db dbtx
}

func (r *userRepo) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, is_active, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID(), u.Name(), u.Email().Value(), u.PasswordHash(), u.Role().String(), u.IsActive(), u.LastLogin(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr(infra.KindDuplicateKey, "email already registered", err)
		}
		return infra.WrapRepoErr(infra.KindDBFailure, "inserting user", err)
	}
	return nil
}

const userColumns = `id, name, email, password_hash, role, is_active, last_login, created_at, updated_at`

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepo) scanUser(row pgx.Row) (*user.User, error) {
	var (
		id                   uuid.UUID
		name, emailRaw       string
		passwordHash, role   string
		isActive             bool
		lastLogin            *time.Time
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &emailRaw, &passwordHash, &role, &isActive, &lastLogin, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "user not found")
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "scanning user", err)
	}

	email, err := user.NewEmail(emailRaw)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "stored email is invalid", err)
	}
	return user.Reconstruct(id, name, email, passwordHash, user.Role(role), isActive, lastLogin, createdAt, updatedAt), nil
}

func (r *userRepo) Update(ctx context.Context, u *user.User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, role = $5, is_active = $6, last_login = $7, updated_at = now()
		WHERE id = $1`,
		u.ID(), u.Name(), u.Email().Value(), u.PasswordHash(), u.Role().String(), u.IsActive(), u.LastLogin(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "updating user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "user not found")
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "deleting user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "user not found")
	}
	return nil
}

type spotRepo struct {
	db dbtx
}

const spotColumns = `id, name, location, hourly_rate, type, status, owner_id, created_at, updated_at`

func (r *spotRepo) Create(ctx context.Context, s *spot.Spot) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO spots (id, name, location, hourly_rate, type, status, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID(), s.Name(), s.Location(), s.HourlyRate(), s.Type(), s.Status().String(), s.OwnerID(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "inserting spot", err)
	}
	return nil
}

func (r *spotRepo) FindByID(ctx context.Context, id uuid.UUID) (*spot.Spot, error) {
	// FOR UPDATE serializes concurrent reservations against the same spot.
	row := r.db.QueryRow(ctx, `SELECT `+spotColumns+` FROM spots WHERE id = $1 FOR UPDATE`, id)

	var (
		spotID               uuid.UUID
		name, location       string
		hourlyRate           int64
		spotType, status     string
		ownerID              uuid.UUID
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&spotID, &name, &location, &hourlyRate, &spotType, &status, &ownerID, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "spot not found")
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "scanning spot", err)
	}
	return spot.Reconstruct(spotID, name, location, hourlyRate, spotType, spot.Status(status), ownerID, createdAt, updatedAt), nil
}

func (r *spotRepo) Update(ctx context.Context, s *spot.Spot) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE spots
		SET name = $2, location = $3, hourly_rate = $4, type = $5, status = $6, updated_at = now()
		WHERE id = $1`,
		s.ID(), s.Name(), s.Location(), s.HourlyRate(), s.Type(), s.Status().String(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "updating spot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "spot not found")
	}
	return nil
}

func (r *spotRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM spots WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "deleting spot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "spot not found")
	}
	return nil
}

type reservationRepo struct {
	db dbtx
}

const reservationColumns = `id, user_id, spot_id, license_plate, estimated_entry_time, estimated_exit_time,
	entry_time, exit_time, status, total_cost, created_at, updated_at`

func (r *reservationRepo) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reservations (id, user_id, spot_id, license_plate, estimated_entry_time, estimated_exit_time,
			entry_time, exit_time, status, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		res.ID(), res.UserID(), res.SpotID(), res.LicensePlate().Value(),
		res.Window().Entry(), res.Window().Exit(),
		res.EntryTime(), res.ExitTime(), res.Status().String(), res.TotalCost(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "inserting reservation", err)
	}
	return nil
}

func (r *reservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1 FOR UPDATE`, id)

	var (
		resID, userID, spotID uuid.UUID
		plateRaw, status      string
		estEntry, estExit     time.Time
		entryTime, exitTime   *time.Time
		totalCost             *int64
		createdAt, updatedAt  time.Time
	)
	if err := row.Scan(&resID, &userID, &spotID, &plateRaw, &estEntry, &estExit,
		&entryTime, &exitTime, &status, &totalCost, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "scanning reservation", err)
	}

	plate, err := reservation.NewLicensePlate(plateRaw)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "stored license plate is invalid", err)
	}
	window, err := reservation.NewStayWindow(estEntry, estExit)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "stored stay window is invalid", err)
	}
	return reservation.Reconstruct(resID, userID, spotID, plate, window,
		entryTime, exitTime, reservation.Status(status), totalCost, createdAt, updatedAt), nil
}

func (r *reservationRepo) Update(ctx context.Context, res *reservation.Reservation) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations
		SET entry_time = $2, exit_time = $3, status = $4, total_cost = $5, updated_at = now()
		WHERE id = $1`,
		res.ID(), res.EntryTime(), res.ExitTime(), res.Status().String(), res.TotalCost(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "updating reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return nil
}

func (r *reservationRepo) CountOpenByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM reservations
		WHERE user_id = $1 AND status IN ('pending', 'active')`, userID,
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "counting open reservations", err)
	}
	return count, nil
}

func (r *reservationRepo) HasOpenBySpot(ctx context.Context, spotID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE spot_id = $1 AND status IN ('pending', 'active')
		)`, spotID,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "checking open reservations", err)
	}
	return exists, nil
}

type vehicleRepo struct {
	db dbtx
}

const vehicleColumns = `id, user_id, plate, type, model, color, created_at, updated_at`

func (r *vehicleRepo) Create(ctx context.Context, v *vehicle.Vehicle) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO vehicles (id, user_id, plate, type, model, color)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		v.ID(), v.UserID(), v.Plate(), v.Type().String(), v.Model(), v.Color(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr(infra.KindDuplicateKey, "plate already registered", err)
		}
		return infra.WrapRepoErr(infra.KindDBFailure, "inserting vehicle", err)
	}
	return nil
}

func (r *vehicleRepo) FindByID(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error) {
	return r.scanVehicle(r.db.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id))
}

func (r *vehicleRepo) FindByPlate(ctx context.Context, plate string) (*vehicle.Vehicle, error) {
	return r.scanVehicle(r.db.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE plate = $1`, plate))
}

func (r *vehicleRepo) scanVehicle(row pgx.Row) (*vehicle.Vehicle, error) {
	var (
		id, userID           uuid.UUID
		plate, vType         string
		model, color         string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &userID, &plate, &vType, &model, &color, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "vehicle not found")
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "scanning vehicle", err)
	}
	return vehicle.Reconstruct(id, userID, plate, vehicle.Type(vType), model, color, createdAt, updatedAt), nil
}

func (r *vehicleRepo) Update(ctx context.Context, v *vehicle.Vehicle) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE vehicles
		SET model = $2, color = $3, updated_at = now()
		WHERE id = $1`,
		v.ID(), v.Model(), v.Color(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "updating vehicle", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "vehicle not found")
	}
	return nil
}

func (r *vehicleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "deleting vehicle", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "vehicle not found")
	}
	return nil
}
