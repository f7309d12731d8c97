package components

import (
	"log/slog"

	"checkout-fulfillment/internal/domain/catalog"
	"checkout-fulfillment/internal/infra/stripeclient"
	"checkout-fulfillment/internal/pkg/config"
	"checkout-fulfillment/internal/usecase/commands"
	"checkout-fulfillment/internal/usecase/queries"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		catalog.NewDefaultCatalog,
		fx.Annotate(
			NewStripeGateway,
			fx.As(new(commands.PaymentGateway)),
			fx.As(new(queries.SessionReader)),
		),
		fx.Annotate(
			NewStripeVerifier,
			fx.As(new(commands.WebhookVerifier)),
		),
	),
)

func NewStripeGateway(cfg config.Config, logger *slog.Logger) *stripeclient.Gateway {
	return stripeclient.NewGateway(cfg.Stripe, logger)
}

func NewStripeVerifier(cfg config.Config) *stripeclient.WebhookVerifier {
	return stripeclient.NewWebhookVerifier(cfg.Stripe)
}
