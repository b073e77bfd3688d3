package response

import (
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"
)

type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	User        *queries.UserView `json:"user"`
}
