package bootstrap

import (
	"github.com/SrRalo/park-pal-reserva-facil/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	JWTModule,
	StoreModule,
	components.UseCaseModule,
	components.HandlerModule,
)
