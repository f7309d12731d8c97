package commands

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/commands/ports.go -package=commandsmock

import (
	"context"
	"time"

	"checkout-fulfillment/internal/domain/catalog"
	"checkout-fulfillment/internal/domain/fulfillment"
	"checkout-fulfillment/internal/domain/mentoring"
	"checkout-fulfillment/internal/domain/payment"

	"github.com/google/uuid"
)

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req payment.SessionRequest) (payment.CreatedSession, error)
}

type WebhookVerifier interface {
	Verify(payload []byte, signature string) (payment.Event, error)
}

// FulfillmentLedger must implement Claim as one atomic conditional write.
// Complete and Fail only apply while attempt is still the latest claim.
type FulfillmentLedger interface {
	Claim(ctx context.Context, c fulfillment.Claim) (fulfillment.ClaimResult, error)
	Complete(ctx context.Context, eventID string, attempt int32, outcome string, at time.Time) error
	Fail(ctx context.Context, eventID string, attempt int32, reason string, at time.Time) error
}

// BookingCreator must return the same booking for a repeated IdempotencyRef.
type BookingCreator interface {
	CreateBooking(ctx context.Context, b mentoring.BookingRequest) (uuid.UUID, error)
}

type Notifier interface {
	Push(ctx context.Context, n mentoring.Notification) error
}

// FulfillmentHandler performs the side effects of a paid checkout for one product kind.
type FulfillmentHandler interface {
	Handle(ctx context.Context, ev payment.Event) error
}

type FulfillmentHandlers map[catalog.Kind]FulfillmentHandler
