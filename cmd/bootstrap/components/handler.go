package components

import (
	"checkout-fulfillment/internal/handler"
	"checkout-fulfillment/internal/handler/api"
	"checkout-fulfillment/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCheckoutHandler,
		api.NewWebhookHandler,
		api.NewPaymentStatusHandler,
		middleware.NewAuthMiddleware,
		func(c *api.CheckoutHandler, w *api.WebhookHandler, p *api.PaymentStatusHandler) handler.Handlers {
			return handler.Handlers{Checkout: c, Webhook: w, PaymentStatus: p}
		},
	),
	fx.Invoke(handler.NewRouter),
)
