//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"checkout-fulfillment/internal/domain/fulfillment"
	"checkout-fulfillment/internal/pkg/errs"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memLedger applies the same claim rules as the real stores under one mutex.
type memLedger struct {
	mu      sync.Mutex
	records map[string]fulfillment.Record
}

func newMemLedger() *memLedger {
	return &memLedger{records: map[string]fulfillment.Record{}}
}

func (l *memLedger) Claim(_ context.Context, c fulfillment.Claim) (fulfillment.ClaimResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, found := l.records[c.EventID]
	switch {
	case !found:
		r := c.NewRecord()
		l.records[c.EventID] = r
		return fulfillment.ClaimResult{Claimed: true, Record: r}, nil
	case existing.Reclaimable(c.StaleBefore):
		r := c.Takeover(existing)
		l.records[c.EventID] = r
		return fulfillment.ClaimResult{Claimed: true, Record: r}, nil
	default:
		return fulfillment.ClaimResult{Claimed: false, Record: existing}, nil
	}
}

func (l *memLedger) Complete(_ context.Context, eventID string, attempt int32, outcome string, at time.Time) error {
	return l.settle(eventID, attempt, fulfillment.StatusDone, outcome, at)
}

func (l *memLedger) Fail(_ context.Context, eventID string, attempt int32, reason string, at time.Time) error {
	return l.settle(eventID, attempt, fulfillment.StatusFailed, reason, at)
}

func (l *memLedger) settle(eventID string, attempt int32, status fulfillment.Status, outcome string, at time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	r, found := l.records[eventID]
	if !found || r.Status != fulfillment.StatusClaimed || r.Attempts != attempt {
		return errs.Mark(errs.New("claim lost"), errs.ErrClaimLost)
	}
	r.Status = status
	r.Outcome = outcome
	r.ProcessedAt = &at
	r.UpdatedAt = at
	l.records[eventID] = r
	return nil
}

func (l *memLedger) get(eventID string) (fulfillment.Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.records[eventID]
	return r, ok
}

func (l *memLedger) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
