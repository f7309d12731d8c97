package queries

//go:generate mockgen -source=fulfillment.go -destination=../../../tests/mock/queries/fulfillment.go -package=queriesmock

import (
	"context"
	"time"

	"checkout-fulfillment/internal/domain/fulfillment"
)

type FulfillmentReadStore interface {
	Get(ctx context.Context, eventID string) (fulfillment.Record, error)
}

type FulfillmentView struct {
	EventID     string     `json:"eventId"`
	EventType   string     `json:"eventType"`
	SessionID   string     `json:"sessionId"`
	Kind        string     `json:"kind"`
	Status      string     `json:"status"`
	Attempts    int32      `json:"attempts"`
	ClaimedAt   time.Time  `json:"claimedAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	Outcome     string     `json:"outcome,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type FulfillmentQueries interface {
	GetByEventID(ctx context.Context, eventID string) (*FulfillmentView, error)
}

type fulfillmentQueriesImpl struct {
	store FulfillmentReadStore
}

func NewFulfillmentQueries(store FulfillmentReadStore) FulfillmentQueries {
	return &fulfillmentQueriesImpl{store: store}
}

func (q *fulfillmentQueriesImpl) GetByEventID(ctx context.Context, eventID string) (*FulfillmentView, error) {
	r, err := q.store.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &FulfillmentView{
		EventID:     r.EventID,
		EventType:   r.EventType,
		SessionID:   r.SessionID,
		Kind:        r.Kind,
		Status:      r.Status.String(),
		Attempts:    r.Attempts,
		ClaimedAt:   r.ClaimedAt,
		ProcessedAt: r.ProcessedAt,
		Outcome:     r.Outcome,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}
