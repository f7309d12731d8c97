package queries

//go:generate mockgen -source=access_status.go -destination=../../../tests/mock/queries/access_status.go -package=queriesmock

import (
	"context"
	"log/slog"

	"checkout-fulfillment/internal/domain/payment"
	"checkout-fulfillment/internal/pkg/errs"
	"checkout-fulfillment/internal/pkg/obs"

	"go.opentelemetry.io/otel/attribute"
)

const MessageUnconfirmed = "payment could not be confirmed, try again"

type SessionReader interface {
	RetrieveSession(ctx context.Context, sessionID string) (payment.SessionSnapshot, error)
}

type AccessStatusView struct {
	SessionID  string            `json:"sessionId"`
	Paid       bool              `json:"paid"`
	Amount     int64             `json:"amount"`
	Currency   string            `json:"currency"`
	Metadata   map[string]string `json:"metadata"`
	Conclusive bool              `json:"conclusive"`
	Message    string            `json:"message,omitempty"`
}

type AccessStatusQueries interface {
	// GetStatus asks the processor directly; the fulfillment ledger is never consulted.
	GetStatus(ctx context.Context, sessionID, buyerID string) (*AccessStatusView, error)
}

type accessStatusQueriesImpl struct {
	sessions SessionReader
	logger   *slog.Logger
}

func NewAccessStatusQueries(sessions SessionReader, logger *slog.Logger) AccessStatusQueries {
	return &accessStatusQueriesImpl{sessions: sessions, logger: logger}
}

func (q *accessStatusQueriesImpl) GetStatus(ctx context.Context, sessionID, buyerID string) (*AccessStatusView, error) {
	ctx, span := obs.Tracer().Start(ctx, "payment.AccessStatus")
	defer span.End()
	span.SetAttributes(attribute.String("checkout.session_id", sessionID))

	snap, err := q.sessions.RetrieveSession(ctx, sessionID)
	if err != nil {
		if errs.Is(err, errs.ErrSessionNotFound) {
			return nil, err
		}
		// Fail closed: an unreachable processor never grants access.
		q.logger.Warn("payment status could not be confirmed", "session_id", sessionID, "error", err.Error())
		span.SetAttributes(attribute.Bool("payment.conclusive", false))
		return toView(payment.Inconclusive(sessionID), MessageUnconfirmed), nil
	}

	if buyerID == "" || snap.Metadata.Get(payment.MetaBuyerID) != buyerID {
		return nil, errs.Mark(errs.Newf("session %s belongs to another buyer", sessionID), errs.ErrSessionNotFound)
	}

	status := payment.AccessFromSnapshot(snap)
	span.SetAttributes(attribute.Bool("payment.paid", status.Paid))
	return toView(status, ""), nil
}

func toView(s payment.AccessStatus, message string) *AccessStatusView {
	return &AccessStatusView{
		SessionID:  s.SessionID,
		Paid:       s.Paid,
		Amount:     s.Amount,
		Currency:   s.Currency,
		Metadata:   s.Metadata.Clone(),
		Conclusive: s.Conclusive,
		Message:    message,
	}
}
