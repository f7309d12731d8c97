package stripeclient

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"checkout-fulfillment/internal/domain/payment"
	"checkout-fulfillment/internal/pkg/config"
	"checkout-fulfillment/internal/pkg/errs"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

// Gateway talks to Stripe Checkout. It never persists anything locally.
type Gateway struct {
	sessions *session.Client
	logger   *slog.Logger
}

func NewGateway(cfg config.StripeConfig, logger *slog.Logger) *Gateway {
	backendCfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: 15 * time.Second},
		MaxNetworkRetries: stripe.Int64(1),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	}
	if cfg.APIBaseURL != "" {
		backendCfg.URL = stripe.String(cfg.APIBaseURL)
		backendCfg.MaxNetworkRetries = stripe.Int64(0)
	}

	return &Gateway{
		sessions: &session.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
			Key: cfg.SecretKey,
		},
		logger: logger,
	}
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, req payment.SessionRequest) (payment.CreatedSession, error) {
	li := req.LineItem
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(li.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(li.Name),
						Description: optionalString(li.Description),
					},
					UnitAmount: stripe.Int64(li.UnitAmount),
				},
				Quantity: stripe.Int64(li.Quantity),
			},
		},
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	cs, err := g.sessions.New(params)
	if err != nil {
		g.logger.Error("stripe create checkout session failed", "kind", li.Kind.String(), "error", err.Error())
		return payment.CreatedSession{}, errs.Mark(errs.Wrap(err, "stripe: create checkout session"), errs.ErrTransientUpstream)
	}

	return payment.CreatedSession{
		ExternalSessionID: cs.ID,
		RedirectURL:       cs.URL,
		CreatedAt:         time.Unix(cs.Created, 0).UTC(),
	}, nil
}

func (g *Gateway) RetrieveSession(ctx context.Context, sessionID string) (payment.SessionSnapshot, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	cs, err := g.sessions.Get(sessionID, params)
	if err != nil {
		if isResourceMissing(err) {
			return payment.SessionSnapshot{}, errs.Mark(errs.Wrapf(err, "stripe: session %s", sessionID), errs.ErrSessionNotFound)
		}
		return payment.SessionSnapshot{}, errs.Mark(errs.Wrap(err, "stripe: retrieve checkout session"), errs.ErrTransientUpstream)
	}

	return snapshotFromSession(cs), nil
}

func snapshotFromSession(cs *stripe.CheckoutSession) payment.SessionSnapshot {
	return payment.SessionSnapshot{
		ExternalSessionID: cs.ID,
		Status:            payment.SessionStatus(cs.Status),
		PaymentStatus:     payment.PaymentStatus(cs.PaymentStatus),
		AmountTotal:       cs.AmountTotal,
		Currency:          string(cs.Currency),
		Metadata:          payment.Metadata(cs.Metadata).Clone(),
	}
}

func isResourceMissing(err error) bool {
	var serr *stripe.Error
	if !errs.As(err, &serr) {
		return false
	}
	return serr.Code == stripe.ErrorCodeResourceMissing || serr.HTTPStatusCode == http.StatusNotFound
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return stripe.String(s)
}
