package components

import (
	"github.com/SrRalo/park-pal-reserva-facil/internal/handler"
	"github.com/SrRalo/park-pal-reserva-facil/internal/handler/api"
	"github.com/SrRalo/park-pal-reserva-facil/internal/handler/middleware"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewSpotHandler,
		api.NewReservationHandler,
		api.NewVehicleHandler,
		api.NewUserHandler,
		api.NewReportHandler,
		middleware.NewAuthMiddleware,
		func(cfg config.Config) *middleware.LoginRateLimiter {
			return middleware.NewLoginRateLimiter(cfg.RateLimit)
		},
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	auth *api.AuthHandler,
	spot *api.SpotHandler,
	reservation *api.ReservationHandler,
	vehicle *api.VehicleHandler,
	user *api.UserHandler,
	report *api.ReportHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:        auth,
		Spot:        spot,
		Reservation: reservation,
		Vehicle:     vehicle,
		User:        user,
		Report:      report,
	}
}
