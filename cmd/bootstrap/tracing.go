package bootstrap

import (
	"context"
	"log/slog"

	"checkout-fulfillment/internal/pkg/config"
	"checkout-fulfillment/internal/pkg/obs"

	"go.uber.org/fx"
)

var TracingModule = fx.Module("tracing",
	fx.Invoke(StartTracing),
)

func StartTracing(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) error {
	shutdown, err := obs.InitTracer(context.Background(), cfg.Tracing)
	if err != nil {
		return err
	}
	if cfg.Tracing.Endpoint != "" {
		logger.Info("OTLP tracing enabled", "endpoint", cfg.Tracing.Endpoint, "service", cfg.Tracing.ServiceName)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return shutdown(ctx)
		},
	})
	return nil
}
