package components

import (
	"encoding/json"
	"log/slog"

	"github.com/SrRalo/park-pal-reserva-facil/internal/events"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/commands"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
	fx.Invoke(registerEventLogging),
)

var usecaseBaseOption = fx.Provide(
	events.NewBus,
)

func registerEventLogging(bus *events.Bus) {
	bus.SubscribeAll(func(event *events.Event) error {
		var p events.ReservationEventPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			return err
		}
		slog.Info("reservation event",
			"type", event.Type,
			"reservation_id", p.ReservationID,
			"spot_id", p.SpotID,
			"status", p.Status)
		return nil
	})
}

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewSpotQueries,
		queries.NewReservationQueries,
		queries.NewVehicleQueries,
		queries.NewReportQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewSpotCommands,
		commands.NewReservationCommands,
		commands.NewVehicleCommands,
		commands.NewUserCommands,
	),
)
