package bootstrap

import (
	"context"
	"log/slog"

	"github.com/SrRalo/park-pal-reserva-facil/internal/infra/db"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra/memstore"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra/pgstore"
	"github.com/SrRalo/park-pal-reserva-facil/internal/infra/tokencache"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/clock"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/config"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		clock.NewRealClock,
		NewStores,
		NewTokenRevoker,
	),
)

// StoresOut bundles the unit of work with every read-store port so one
// constructor can pick the driver for all of them.
type StoresOut struct {
	fx.Out

	UoW              shared.UnitOfWork
	ReservationReads queries.ReservationReadStore
	SpotReads        queries.SpotReadStore
	UserReads        queries.UserReadStore
	VehicleReads     queries.VehicleReadStore
	ReportReads      queries.ReportReadStore
}

func NewStores(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) (StoresOut, error) {
	if cfg.Store.Driver == "postgres" {
		pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
		if err != nil {
			return StoresOut{}, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				cleanup()
				return nil
			},
		})

		slog.Info("storage initialized", "driver", "postgres")
		return StoresOut{
			UoW:              pgstore.NewUnitOfWork(pool),
			ReservationReads: pgstore.NewReservationReads(pool),
			SpotReads:        pgstore.NewSpotReads(pool),
			UserReads:        pgstore.NewUserReads(pool),
			VehicleReads:     pgstore.NewVehicleReads(pool),
			ReportReads:      pgstore.NewReportReads(pool),
		}, nil
	}

	store := memstore.New(clk)
	slog.Info("storage initialized", "driver", "memory")
	return StoresOut{
		UoW:              store,
		ReservationReads: store.ReservationReads(),
		SpotReads:        store.SpotReads(),
		UserReads:        store.UserReads(),
		VehicleReads:     store.VehicleReads(),
		ReportReads:      store.ReportReads(),
	}, nil
}

func NewTokenRevoker(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) shared.TokenRevoker {
	if !cfg.Redis.Enabled {
		return tokencache.NewMemoryDenylist(clk)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	slog.Info("token denylist initialized", "backend", "redis", "addr", cfg.Redis.Address)
	return tokencache.NewRedisDenylist(client)
}
