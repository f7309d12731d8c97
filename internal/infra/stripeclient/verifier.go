package stripeclient

import (
	"encoding/json"
	"strings"
	"time"

	"checkout-fulfillment/internal/domain/payment"
	"checkout-fulfillment/internal/pkg/config"
	"checkout-fulfillment/internal/pkg/errs"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const (
	stripeSessionCompleted      = "checkout.session.completed"
	stripeAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
	stripeAsyncPaymentFailed    = "checkout.session.async_payment_failed"
	stripeSessionExpired        = "checkout.session.expired"
)

// WebhookVerifier authenticates Stripe-Signature headers over the raw request body.
type WebhookVerifier struct {
	secret    string
	tolerance time.Duration
}

func NewWebhookVerifier(cfg config.StripeConfig) *WebhookVerifier {
	return &WebhookVerifier{
		secret:    cfg.WebhookSecret,
		tolerance: cfg.WebhookTolerance,
	}
}

// Verify must receive the body exactly as delivered. Any re-encoding breaks the signature.
func (v *WebhookVerifier) Verify(payload []byte, signature string) (payment.Event, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		Tolerance:                v.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return payment.Event{}, errs.Mark(errs.Wrap(err, "stripe signature"), errs.ErrVerificationFailed)
	}
	if ev.ID == "" {
		return payment.Event{}, errs.Mark(errs.New("event id is missing"), errs.ErrVerificationFailed)
	}

	out := payment.Event{
		ExternalEventID: ev.ID,
		Type:            payment.EventType(ev.Type),
		Metadata:        payment.Metadata{},
		RawPayload:      payload,
		Signature:       signature,
	}
	if !strings.HasPrefix(string(ev.Type), "checkout.session.") || ev.Data == nil {
		return out, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(ev.Data.Raw, &cs); err != nil {
		return payment.Event{}, errs.Mark(errs.Wrap(err, "malformed checkout session object"), errs.ErrVerificationFailed)
	}
	out.Type = mapEventType(string(ev.Type), cs.PaymentStatus)
	out.SessionID = cs.ID
	out.AmountTotal = cs.AmountTotal
	out.Currency = string(cs.Currency)
	out.PaymentStatus = payment.PaymentStatus(cs.PaymentStatus)
	out.Metadata = payment.Metadata(cs.Metadata).Clone()
	return out, nil
}

func mapEventType(stripeType string, ps stripe.CheckoutSessionPaymentStatus) payment.EventType {
	switch stripeType {
	case stripeSessionCompleted:
		if ps == stripe.CheckoutSessionPaymentStatusPaid {
			return payment.EventCheckoutCompleted
		}
		return payment.EventCheckoutPending
	case stripeAsyncPaymentSucceeded:
		return payment.EventCheckoutCompleted
	case stripeAsyncPaymentFailed, stripeSessionExpired:
		return payment.EventCheckoutFailed
	default:
		return payment.EventType(stripeType)
	}
}
