package repository

import (
	"context"
	"time"

	"checkout-fulfillment/internal/domain/fulfillment"
	"checkout-fulfillment/internal/infra"
	sqlc "checkout-fulfillment/internal/infra/sqlc/generated"
	"checkout-fulfillment/internal/pkg/errs"
	"checkout-fulfillment/internal/pkg/pgconv"
)

type FulfillmentLedgerQueries interface {
	ClaimFulfillmentRecord(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimFulfillmentRecordParams) (sqlc.FulfillmentRecords, error)
	GetFulfillmentRecord(ctx context.Context, db sqlc.DBTX, eventID string) (sqlc.FulfillmentRecords, error)
	CompleteFulfillmentRecord(ctx context.Context, db sqlc.DBTX, arg sqlc.CompleteFulfillmentRecordParams) (int64, error)
	FailFulfillmentRecord(ctx context.Context, db sqlc.DBTX, arg sqlc.FailFulfillmentRecordParams) (int64, error)
}

// FulfillmentLedger is the Postgres idempotency ledger. The claim is a single
// conditional upsert so concurrent deliveries are serialized by the primary key.
type FulfillmentLedger struct {
	queries FulfillmentLedgerQueries
	db      sqlc.DBTX
}

func NewFulfillmentLedger(queries FulfillmentLedgerQueries, db sqlc.DBTX) *FulfillmentLedger {
	return &FulfillmentLedger{
		queries: queries,
		db:      db,
	}
}

func (r *FulfillmentLedger) Claim(ctx context.Context, c fulfillment.Claim) (fulfillment.ClaimResult, error) {
	row, err := r.queries.ClaimFulfillmentRecord(ctx, r.db, sqlc.ClaimFulfillmentRecordParams{
		EventID:     c.EventID,
		EventType:   c.EventType,
		SessionID:   c.SessionID,
		Kind:        c.Kind,
		ClaimedAt:   pgconv.TimeToPgtype(c.Now),
		StaleBefore: pgconv.TimeToPgtype(c.StaleBefore),
	})
	if err == nil {
		return fulfillment.ClaimResult{Claimed: true, Record: recordFromRow(row)}, nil
	}
	if !pgconv.IsNoRows(err) {
		return fulfillment.ClaimResult{}, infra.WrapRepoErr("failed to claim fulfillment record", err)
	}

	// The conflict guard refused the takeover; report the row that holds the event.
	existing, err := r.queries.GetFulfillmentRecord(ctx, r.db, c.EventID)
	if err != nil {
		return fulfillment.ClaimResult{}, infra.WrapRepoErr("failed to load blocking fulfillment record", err)
	}
	return fulfillment.ClaimResult{Claimed: false, Record: recordFromRow(existing)}, nil
}

func (r *FulfillmentLedger) Complete(ctx context.Context, eventID string, attempt int32, outcome string, at time.Time) error {
	n, err := r.queries.CompleteFulfillmentRecord(ctx, r.db, sqlc.CompleteFulfillmentRecordParams{
		ProcessedAt: pgconv.TimeToPgtype(at),
		Outcome:     pgconv.StringToPgtype(outcome),
		EventID:     eventID,
		Attempts:    attempt,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to complete fulfillment record", err)
	}
	if n == 0 {
		return errs.Mark(errs.Newf("event %s attempt %d no longer holds the claim", eventID, attempt), errs.ErrClaimLost)
	}
	return nil
}

func (r *FulfillmentLedger) Fail(ctx context.Context, eventID string, attempt int32, reason string, at time.Time) error {
	n, err := r.queries.FailFulfillmentRecord(ctx, r.db, sqlc.FailFulfillmentRecordParams{
		ProcessedAt: pgconv.TimeToPgtype(at),
		Outcome:     pgconv.StringToPgtype(reason),
		EventID:     eventID,
		Attempts:    attempt,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to mark fulfillment record failed", err)
	}
	if n == 0 {
		return errs.Mark(errs.Newf("event %s attempt %d no longer holds the claim", eventID, attempt), errs.ErrClaimLost)
	}
	return nil
}

func (r *FulfillmentLedger) Get(ctx context.Context, eventID string) (fulfillment.Record, error) {
	row, err := r.queries.GetFulfillmentRecord(ctx, r.db, eventID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return fulfillment.Record{}, errs.Mark(infra.WrapRepoErr("fulfillment record not found", err), errs.ErrRecordNotFound)
		}
		return fulfillment.Record{}, infra.WrapRepoErr("failed to get fulfillment record", err)
	}
	return recordFromRow(row), nil
}

func recordFromRow(row sqlc.FulfillmentRecords) fulfillment.Record {
	return fulfillment.Record{
		EventID:     row.EventID,
		EventType:   row.EventType,
		SessionID:   row.SessionID,
		Kind:        row.Kind,
		Status:      fulfillment.Status(row.Status),
		Attempts:    row.Attempts,
		ClaimedAt:   pgconv.TimeFromPgtype(row.ClaimedAt),
		ProcessedAt: pgconv.TimePtrFromPgtype(row.ProcessedAt),
		Outcome:     pgconv.StringFromPgtype(row.Outcome),
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
