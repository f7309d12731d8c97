package bootstrap

import (
	"context"
	"log/slog"

	"checkout-fulfillment/internal/infra/db"
	"checkout-fulfillment/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// NewDB opens the pool for bookings and the outbox. The ledger uses it too
// unless FULFILLMENT_LEDGER_DRIVER=bolt.
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}
	logger.Info("database pool ready", "host", cfg.DB.Host, "db", cfg.DB.DBName, "ledger_driver", cfg.Fulfillment.LedgerDriver)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			logger.Info("database pool closed")
			return nil
		},
	})

	return pool, nil
}
