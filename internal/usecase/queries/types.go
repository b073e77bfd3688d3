package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read models (DTOs for the read side)

type ReservationView struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uuid.UUID  `json:"user_id"`
	UserName           string     `json:"user_name"`
	SpotID             uuid.UUID  `json:"spot_id"`
	SpotName           string     `json:"spot_name"`
	SpotOwnerID        uuid.UUID  `json:"spot_owner_id"`
	HourlyRate         int64      `json:"hourly_rate"`
	LicensePlate       string     `json:"license_plate"`
	EstimatedEntryTime time.Time  `json:"estimated_entry_time"`
	EstimatedExitTime  time.Time  `json:"estimated_exit_time"`
	EntryTime          *time.Time `json:"entry_time,omitempty"`
	ExitTime           *time.Time `json:"exit_time,omitempty"`
	Status             string     `json:"status"`
	TotalCost          *int64     `json:"total_cost,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type SpotView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	HourlyRate int64     `json:"hourly_rate"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	OwnerID    uuid.UUID `json:"owner_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type UserView struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type VehicleView struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Plate     string    `json:"plate"`
	Type      string    `json:"type"`
	Model     string    `json:"model,omitempty"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TicketView is what the printed/displayed ticket carries. EstimatedCost
// comes from the central calculator, never recomputed by callers.
type TicketView struct {
	ReservationID      uuid.UUID  `json:"reservation_id"`
	UserName           string     `json:"user_name"`
	LicensePlate       string     `json:"license_plate"`
	SpotName           string     `json:"spot_name"`
	EntryTime          *time.Time `json:"entry_time,omitempty"`
	EstimatedEntryTime time.Time  `json:"estimated_entry_time"`
	EstimatedExitTime  time.Time  `json:"estimated_exit_time"`
	EstimatedCost      int64      `json:"estimated_cost"`
	Status             string     `json:"status"`
}

// IncomeRow is one aggregated bucket of the income report. Recomputed per
// query, never persisted.
type IncomeRow struct {
	Date             time.Time `json:"date"`
	Amount           int64     `json:"amount"`
	ReservationCount int       `json:"reservation_count"`
}

type GroupBy string

const (
	GroupByDay   GroupBy = "day"
	GroupByMonth GroupBy = "month"
)

func (g GroupBy) IsValid() bool {
	return g == GroupByDay || g == GroupByMonth
}

// Read store ports, implemented by memstore and pgstore.

type ReservationReadStore interface {
	FindView(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationView, error)
	ListBySpotOwner(ctx context.Context, ownerID uuid.UUID) ([]*ReservationView, error)
	ListAll(ctx context.Context) ([]*ReservationView, error)
}

type SpotReadStore interface {
	FindView(ctx context.Context, id uuid.UUID) (*SpotView, error)
	ListAvailable(ctx context.Context) ([]*SpotView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*SpotView, error)
	ListAll(ctx context.Context) ([]*SpotView, error)
}

type UserReadStore interface {
	FindView(ctx context.Context, id uuid.UUID) (*UserView, error)
	ListAll(ctx context.Context) ([]*UserView, error)
}

type VehicleReadStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*VehicleView, error)
	FindByPlate(ctx context.Context, plate string) (*VehicleView, error)
}

type ReportReadStore interface {
	// IncomeByOwner aggregates completed, cost-bearing reservations on the
	// owner's spots into date buckets.
	IncomeByOwner(ctx context.Context, ownerID uuid.UUID, from, to time.Time, groupBy GroupBy) ([]*IncomeRow, error)
}
