package components

import (
	"context"
	"log/slog"

	"checkout-fulfillment/internal/domain/fulfillment"
	"checkout-fulfillment/internal/infra/boltstore"
	"checkout-fulfillment/internal/infra/mq"
	"checkout-fulfillment/internal/infra/repository"
	sqlc "checkout-fulfillment/internal/infra/sqlc/generated"
	"checkout-fulfillment/internal/pkg/config"
	"checkout-fulfillment/internal/usecase/commands"
	"checkout-fulfillment/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	ledgerModule,
	collaboratorModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var ledgerModule = fx.Module("persistence/ledger",
	fx.Provide(
		NewFulfillmentStore,
		func(s FulfillmentStore) commands.FulfillmentLedger { return s },
		func(s FulfillmentStore) queries.FulfillmentReadStore { return s },
	),
)

var collaboratorModule = fx.Module("persistence/collaborators",
	fx.Provide(
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(repository.BookingWriteQueries)),
		),
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(commands.BookingCreator)),
		),
		NewNotifier,
	),
)

// FulfillmentStore is the ledger as seen by both the dispatcher and the audit query.
type FulfillmentStore interface {
	commands.FulfillmentLedger
	Get(ctx context.Context, eventID string) (fulfillment.Record, error)
}

func NewFulfillmentStore(lc fx.Lifecycle, cfg config.Config, q *sqlc.Queries, db sqlc.DBTX, logger *slog.Logger) (FulfillmentStore, error) {
	if cfg.Fulfillment.LedgerDriver != config.LedgerDriverBolt {
		logger.Info("fulfillment ledger", "driver", config.LedgerDriverPostgres)
		return repository.NewFulfillmentLedger(q, db), nil
	}

	ledger, err := boltstore.Open(cfg.Fulfillment.BoltPath)
	if err != nil {
		return nil, err
	}
	logger.Info("fulfillment ledger", "driver", config.LedgerDriverBolt, "path", cfg.Fulfillment.BoltPath)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return ledger.Close()
		},
	})
	return ledger, nil
}

// NewNotifier publishes to RabbitMQ when AMQP_URL is set and writes the outbox table otherwise.
func NewNotifier(lc fx.Lifecycle, cfg config.Config, q *sqlc.Queries, db sqlc.DBTX, logger *slog.Logger) (commands.Notifier, error) {
	if cfg.AMQP.URL == "" {
		logger.Info("mentor notifications", "transport", "outbox")
		return repository.NewNotificationOutbox(q, db), nil
	}

	publisher, err := mq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.RoutingKey)
	if err != nil {
		return nil, err
	}
	logger.Info("mentor notifications", "transport", "amqp", "exchange", cfg.AMQP.Exchange)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}
