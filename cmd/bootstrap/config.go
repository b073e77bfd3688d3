package bootstrap

import (
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
