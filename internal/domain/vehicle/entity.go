package vehicle

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidType = errors.New("invalid vehicle type")
	ErrEmptyPlate  = errors.New("plate cannot be empty")
)

type Vehicle struct {
	id        uuid.UUID
	userID    uuid.UUID
	plate     string
	vType     Type
	model     string
	color     string
	createdAt time.Time
	updatedAt time.Time
}

func NewVehicle(userID uuid.UUID, plate string, vType Type, model, color string) (*Vehicle, error) {
	plate = NormalizePlate(plate)
	if plate == "" {
		return nil, ErrEmptyPlate
	}
	if !vType.IsValid() {
		return nil, ErrInvalidType
	}

	return &Vehicle{
		id:     uuid.New(),
		userID: userID,
		plate:  plate,
		vType:  vType,
		model:  strings.TrimSpace(model),
		color:  strings.TrimSpace(color),
	}, nil
}

func Reconstruct(
	id, userID uuid.UUID,
	plate string,
	vType Type,
	model, color string,
	createdAt, updatedAt time.Time,
) *Vehicle {
	return &Vehicle{
		id:        id,
		userID:    userID,
		plate:     plate,
		vType:     vType,
		model:     model,
		color:     color,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func (v *Vehicle) UpdateDetails(model, color string) {
	v.model = strings.TrimSpace(model)
	v.color = strings.TrimSpace(color)
}

func (v *Vehicle) ID() uuid.UUID        { return v.id }
func (v *Vehicle) UserID() uuid.UUID    { return v.userID }
func (v *Vehicle) Plate() string        { return v.plate }
func (v *Vehicle) Type() Type           { return v.vType }
func (v *Vehicle) Model() string        { return v.model }
func (v *Vehicle) Color() string        { return v.color }
func (v *Vehicle) CreatedAt() time.Time { return v.createdAt }
func (v *Vehicle) UpdatedAt() time.Time { return v.updatedAt }
