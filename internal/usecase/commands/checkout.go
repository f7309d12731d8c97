package commands

//go:generate mockgen -source=checkout.go -destination=../../../tests/mock/commands/checkout.go -package=commandsmock

import (
	"context"
	"log/slog"

	"checkout-fulfillment/internal/domain/catalog"
	"checkout-fulfillment/internal/domain/payment"
	"checkout-fulfillment/internal/pkg/config"
	"checkout-fulfillment/internal/pkg/errs"
	"checkout-fulfillment/internal/pkg/obs"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type CreateCheckoutInput struct {
	Kind     string
	Quantity int64
	Metadata map[string]string
	BuyerID  string
}

type CheckoutResult struct {
	SessionID   string
	RedirectURL string
	Amount      int64
	Currency    string
}

type CheckoutCommands interface {
	CreateSession(ctx context.Context, in CreateCheckoutInput) (*CheckoutResult, error)
}

type checkoutCommandsImpl struct {
	catalog    *catalog.Catalog
	gateway    PaymentGateway
	successURL string
	cancelURL  string
	logger     *slog.Logger
}

func NewCheckoutCommands(cat *catalog.Catalog, gateway PaymentGateway, cfg config.Config, logger *slog.Logger) CheckoutCommands {
	return &checkoutCommandsImpl{
		catalog:    cat,
		gateway:    gateway,
		successURL: cfg.Stripe.SuccessURL,
		cancelURL:  cfg.Stripe.CancelURL,
		logger:     logger,
	}
}

// CreateSession prices the checkout from the catalog only. Client supplied
// amounts never reach the processor.
func (c *checkoutCommandsImpl) CreateSession(ctx context.Context, in CreateCheckoutInput) (*CheckoutResult, error) {
	ctx, span := obs.Tracer().Start(ctx, "checkout.CreateSession")
	defer span.End()

	kind := catalog.ParseKind(in.Kind)
	span.SetAttributes(attribute.String("checkout.kind", kind.String()), attribute.Int64("checkout.quantity", in.Quantity))

	entry, err := c.catalog.Resolve(kind)
	if err != nil {
		return nil, err
	}
	lineItem, err := entry.LineItem(in.Quantity)
	if err != nil {
		return nil, err
	}
	metadata := payment.Metadata(in.Metadata).Merge(kind.String(), in.BuyerID)
	if err := metadata.Validate(); err != nil {
		return nil, err
	}

	created, err := c.gateway.CreateCheckoutSession(ctx, payment.SessionRequest{
		LineItem:   lineItem,
		SuccessURL: c.successURL,
		CancelURL:  c.cancelURL,
		Metadata:   metadata,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create checkout session")
		if !errs.Is(err, errs.ErrTransientUpstream) {
			err = errs.Mark(err, errs.ErrTransientUpstream)
		}
		return nil, err
	}

	span.SetAttributes(attribute.String("checkout.session_id", created.ExternalSessionID))
	c.logger.Info("checkout session created",
		"session_id", created.ExternalSessionID,
		"kind", kind.String(),
		"quantity", lineItem.Quantity,
		"amount", lineItem.Amount,
		"currency", lineItem.Currency,
	)

	return &CheckoutResult{
		SessionID:   created.ExternalSessionID,
		RedirectURL: created.RedirectURL,
		Amount:      lineItem.Amount,
		Currency:    lineItem.Currency,
	}, nil
}
