package request

import (
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	SpotID             uuid.UUID `json:"spot_id" binding:"required"`
	LicensePlate       string    `json:"license_plate" binding:"required"`
	EstimatedEntryTime time.Time `json:"estimated_entry_time" binding:"required"`
	EstimatedExitTime  time.Time `json:"estimated_exit_time" binding:"required"`
}

func (r CreateReservationRequest) ToInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		SpotID:             r.SpotID,
		LicensePlate:       r.LicensePlate,
		EstimatedEntryTime: r.EstimatedEntryTime,
		EstimatedExitTime:  r.EstimatedExitTime,
	}
}
