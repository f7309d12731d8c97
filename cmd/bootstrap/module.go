package bootstrap

import (
	"checkout-fulfillment/cmd/bootstrap/components"
	"checkout-fulfillment/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	TracingModule,
	DBModule,
	JWTModule,
	components.PersistenceModule,
	components.PaymentModule,
	components.UseCaseModule,
	components.HandlerModule,
)
