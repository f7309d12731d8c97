package components

import (
	"checkout-fulfillment/internal/pkg/clock"
	"checkout-fulfillment/internal/usecase/commands"
	"checkout-fulfillment/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseHandlersModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

// Kinds without a handler complete with no side effect.
var usecaseHandlersModule = fx.Module("usecase/fulfillment-handlers",
	fx.Provide(
		commands.NewMentoringHandler,
		commands.NewFulfillmentHandlers,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCheckoutCommands,
		commands.NewFulfillmentCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAccessStatusQueries,
		queries.NewFulfillmentQueries,
	),
)
