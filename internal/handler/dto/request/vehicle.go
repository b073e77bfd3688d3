package request

import (
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/commands"
)

type RegisterVehicleRequest struct {
	Plate string `json:"plate" binding:"required"`
	Type  string `json:"type" binding:"required"`
	Model string `json:"model"`
	Color string `json:"color"`
}

func (r RegisterVehicleRequest) ToInput() commands.RegisterVehicleInput {
	return commands.RegisterVehicleInput{
		Plate: r.Plate,
		Type:  r.Type,
		Model: r.Model,
		Color: r.Color,
	}
}

type UpdateVehicleRequest struct {
	Model *string `json:"model,omitempty"`
	Color *string `json:"color,omitempty"`
}

func (r UpdateVehicleRequest) ToInput() commands.UpdateVehicleInput {
	return commands.UpdateVehicleInput{
		Model: r.Model,
		Color: r.Color,
	}
}
