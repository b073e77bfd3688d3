package request

import (
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/commands"
)

type CreateSpotRequest struct {
	Name       string `json:"name" binding:"required"`
	Location   string `json:"location"`
	HourlyRate int64  `json:"hourly_rate" binding:"required,gt=0"`
	Type       string `json:"type"`
}

func (r CreateSpotRequest) ToInput() commands.CreateSpotInput {
	return commands.CreateSpotInput{
		Name:       r.Name,
		Location:   r.Location,
		HourlyRate: r.HourlyRate,
		Type:       r.Type,
	}
}

type UpdateSpotRequest struct {
	Name       *string `json:"name,omitempty"`
	Location   *string `json:"location,omitempty"`
	HourlyRate *int64  `json:"hourly_rate,omitempty"`
	Type       *string `json:"type,omitempty"`
}

func (r UpdateSpotRequest) ToInput() commands.UpdateSpotInput {
	return commands.UpdateSpotInput{
		Name:       r.Name,
		Location:   r.Location,
		HourlyRate: r.HourlyRate,
		Type:       r.Type,
	}
}
