package spot

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName         = errors.New("spot name cannot be empty")
	ErrInvalidHourlyRate = errors.New("hourly rate must be positive")
	ErrNotAvailable      = errors.New("spot is not available")
	ErrNotReserved       = errors.New("spot is not reserved")
	ErrNotReleasable     = errors.New("spot is already available")
)

// Spot is a single parking space. Status transitions are driven only by
// the reservation lifecycle: available -> reserved -> occupied -> available.
type Spot struct {
	id         uuid.UUID
	name       string
	location   string
	hourlyRate int64
	spotType   string
	status     Status
	ownerID    uuid.UUID
	createdAt  time.Time
	updatedAt  time.Time
}

func NewSpot(name, location string, hourlyRate int64, spotType string, ownerID uuid.UUID) (*Spot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if hourlyRate <= 0 {
		return nil, ErrInvalidHourlyRate
	}

	return &Spot{
		id:         uuid.New(),
		name:       name,
		location:   strings.TrimSpace(location),
		hourlyRate: hourlyRate,
		spotType:   spotType,
		status:     StatusAvailable,
		ownerID:    ownerID,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	name, location string,
	hourlyRate int64,
	spotType string,
	status Status,
	ownerID uuid.UUID,
	createdAt, updatedAt time.Time,
) *Spot {
	return &Spot{
		id:         id,
		name:       name,
		location:   location,
		hourlyRate: hourlyRate,
		spotType:   spotType,
		status:     status,
		ownerID:    ownerID,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Reserve flips an available spot to reserved when a reservation is created.
func (s *Spot) Reserve() error {
	if s.status != StatusAvailable {
		return ErrNotAvailable
	}
	s.status = StatusReserved
	return nil
}

// Occupy flips a reserved spot to occupied on vehicle entry.
func (s *Spot) Occupy() error {
	if s.status != StatusReserved {
		return ErrNotReserved
	}
	s.status = StatusOccupied
	return nil
}

// Release returns the spot to available on exit or cancellation.
func (s *Spot) Release() error {
	if s.status == StatusAvailable {
		return ErrNotReleasable
	}
	s.status = StatusAvailable
	return nil
}

func (s *Spot) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	s.name = name
	return nil
}

func (s *Spot) Relocate(location string) {
	s.location = strings.TrimSpace(location)
}

func (s *Spot) ChangeHourlyRate(rate int64) error {
	if rate <= 0 {
		return ErrInvalidHourlyRate
	}
	s.hourlyRate = rate
	return nil
}

func (s *Spot) ChangeType(spotType string) {
	s.spotType = spotType
}

func (s *Spot) IsAvailable() bool {
	return s.status == StatusAvailable
}

func (s *Spot) ID() uuid.UUID        { return s.id }
func (s *Spot) Name() string         { return s.name }
func (s *Spot) Location() string     { return s.location }
func (s *Spot) HourlyRate() int64    { return s.hourlyRate }
func (s *Spot) Type() string         { return s.spotType }
func (s *Spot) Status() Status       { return s.status }
func (s *Spot) OwnerID() uuid.UUID   { return s.ownerID }
func (s *Spot) CreatedAt() time.Time { return s.createdAt }
func (s *Spot) UpdatedAt() time.Time { return s.updatedAt }
