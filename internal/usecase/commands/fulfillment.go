package commands

//go:generate mockgen -source=fulfillment.go -destination=../../../tests/mock/commands/fulfillment.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"checkout-fulfillment/internal/domain/catalog"
	"checkout-fulfillment/internal/domain/fulfillment"
	"checkout-fulfillment/internal/domain/payment"
	"checkout-fulfillment/internal/pkg/clock"
	"checkout-fulfillment/internal/pkg/config"
	"checkout-fulfillment/internal/pkg/errs"
	"checkout-fulfillment/internal/pkg/obs"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const outcomeNoSideEffect = "no side effect"

type DispatchResult struct {
	EventID string
	Outcome fulfillment.Outcome
	Detail  string
}

type FulfillmentCommands interface {
	// Receive verifies a raw webhook delivery and dispatches it.
	Receive(ctx context.Context, payload []byte, signature string) (*DispatchResult, error)
	Dispatch(ctx context.Context, ev payment.Event) (*DispatchResult, error)
}

type fulfillmentCommandsImpl struct {
	verifier       WebhookVerifier
	ledger         FulfillmentLedger
	handlers       FulfillmentHandlers
	clock          clock.Clock
	staleAfter     time.Duration
	handlerTimeout time.Duration
	logger         *slog.Logger
}

func NewFulfillmentCommands(
	verifier WebhookVerifier,
	ledger FulfillmentLedger,
	handlers FulfillmentHandlers,
	clock clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) FulfillmentCommands {
	return &fulfillmentCommandsImpl{
		verifier:       verifier,
		ledger:         ledger,
		handlers:       handlers,
		clock:          clock,
		staleAfter:     cfg.Fulfillment.ClaimStaleAfter,
		handlerTimeout: cfg.Fulfillment.HandlerTimeout,
		logger:         logger,
	}
}

func (f *fulfillmentCommandsImpl) Receive(ctx context.Context, payload []byte, signature string) (*DispatchResult, error) {
	ev, err := f.verifier.Verify(payload, signature)
	if err != nil {
		if !errs.Is(err, errs.ErrVerificationFailed) {
			err = errs.Mark(err, errs.ErrVerificationFailed)
		}
		return nil, err
	}
	return f.Dispatch(ctx, ev)
}

func (f *fulfillmentCommandsImpl) Dispatch(ctx context.Context, ev payment.Event) (*DispatchResult, error) {
	ctx, span := obs.Tracer().Start(ctx, "fulfillment.Dispatch")
	defer span.End()
	span.SetAttributes(
		attribute.String("fulfillment.event_id", ev.ExternalEventID),
		attribute.String("fulfillment.event_type", ev.Type.String()),
		attribute.String("fulfillment.kind", ev.Kind()),
	)

	now := f.clock.Now()
	res, err := f.ledger.Claim(ctx, fulfillment.Claim{
		EventID:     ev.ExternalEventID,
		EventType:   ev.Type.String(),
		SessionID:   ev.SessionID,
		Kind:        ev.Kind(),
		Now:         now,
		StaleBefore: now.Add(-f.staleAfter),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "claim")
		return nil, errs.Wrapf(err, "claim event %s", ev.ExternalEventID)
	}

	if !res.Claimed {
		if res.Record.Status == fulfillment.StatusDone {
			f.logger.Info("duplicate webhook delivery", "event_id", ev.ExternalEventID, "attempts", res.Record.Attempts)
			return &DispatchResult{EventID: ev.ExternalEventID, Outcome: fulfillment.OutcomeDuplicate, Detail: res.Record.Outcome}, nil
		}
		return nil, errs.Mark(errs.Newf("event %s is claimed since %s", ev.ExternalEventID, res.Record.ClaimedAt.Format(time.RFC3339)), errs.ErrFulfillmentInProgress)
	}
	attempt := res.Record.Attempts
	span.SetAttributes(attribute.Int("fulfillment.attempt", int(attempt)))

	if ev.Type != payment.EventCheckoutCompleted {
		detail := string(fulfillment.OutcomeIgnored) + ":" + ev.Type.String()
		return f.complete(ctx, ev, attempt, fulfillment.OutcomeIgnored, detail)
	}

	handler, ok := f.handlers[catalog.ParseKind(ev.Kind())]
	if !ok {
		return f.complete(ctx, ev, attempt, fulfillment.OutcomeFulfilled, outcomeNoSideEffect)
	}

	if err := f.runHandler(ctx, handler, ev); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "handler")
		f.logger.Error("fulfillment handler failed",
			"event_id", ev.ExternalEventID,
			"session_id", ev.SessionID,
			"kind", ev.Kind(),
			"attempt", attempt,
			"error", err.Error(),
		)
		if ferr := f.ledger.Fail(context.WithoutCancel(ctx), ev.ExternalEventID, attempt, err.Error(), f.clock.Now()); ferr != nil {
			f.logger.Error("failed to release fulfillment claim", "event_id", ev.ExternalEventID, "error", ferr.Error())
		}
		return nil, errs.Mark(errs.Wrapf(err, "fulfill event %s", ev.ExternalEventID), errs.ErrFulfillmentHandler)
	}

	return f.complete(ctx, ev, attempt, fulfillment.OutcomeFulfilled, string(fulfillment.OutcomeFulfilled))
}

func (f *fulfillmentCommandsImpl) runHandler(ctx context.Context, h FulfillmentHandler, ev payment.Event) error {
	hctx, cancel := context.WithTimeout(ctx, f.handlerTimeout)
	defer cancel()
	return h.Handle(hctx, ev)
}

func (f *fulfillmentCommandsImpl) complete(ctx context.Context, ev payment.Event, attempt int32, outcome fulfillment.Outcome, detail string) (*DispatchResult, error) {
	err := f.ledger.Complete(context.WithoutCancel(ctx), ev.ExternalEventID, attempt, detail, f.clock.Now())
	if err != nil {
		if errs.Is(err, errs.ErrClaimLost) {
			// A newer delivery took over the stale claim and will settle the row.
			return nil, errs.Mark(err, errs.ErrFulfillmentInProgress)
		}
		return nil, errs.Wrapf(err, "complete event %s", ev.ExternalEventID)
	}

	f.logger.Info("fulfillment completed",
		"event_id", ev.ExternalEventID,
		"event_type", ev.Type.String(),
		"outcome", detail,
		"attempt", attempt,
	)
	return &DispatchResult{EventID: ev.ExternalEventID, Outcome: outcome, Detail: detail}, nil
}
