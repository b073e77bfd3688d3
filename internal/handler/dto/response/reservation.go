package response

import (
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"
)

// ExitResponse surfaces the billed cost next to the closed reservation.
type ExitResponse struct {
	Reservation *queries.ReservationView `json:"reservation"`
	TotalCost   int64                    `json:"total_cost"`
}
