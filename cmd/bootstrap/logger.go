package bootstrap

import (
	"log/slog"

	"checkout-fulfillment/internal/handler/middleware"
	"checkout-fulfillment/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

func NewLogger(cfg config.Config) *slog.Logger {
	return middleware.NewLogger(cfg.Log).GetSlogLogger()
}
