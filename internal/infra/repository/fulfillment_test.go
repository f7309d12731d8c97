//go:build unit

package repository_test

import (
	"context"
	"testing"
	"time"

	"checkout-fulfillment/internal/domain/fulfillment"
	"checkout-fulfillment/internal/infra"
	"checkout-fulfillment/internal/infra/repository"
	sqlc "checkout-fulfillment/internal/infra/sqlc/generated"
	"checkout-fulfillment/internal/pkg/errs"
	"checkout-fulfillment/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	ledgerNow   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ledgerClaim = fulfillment.Claim{
		EventID:     "evt_1",
		EventType:   "checkout.completed",
		SessionID:   "cs_1",
		Kind:        "mentoria",
		Now:         ledgerNow,
		StaleBefore: ledgerNow.Add(-5 * time.Minute),
	}
)

func ledgerRow(status string, attempts int32, claimedAt time.Time) sqlc.FulfillmentRecords {
	return sqlc.FulfillmentRecords{
		EventID:   "evt_1",
		EventType: "checkout.completed",
		SessionID: "cs_1",
		Kind:      "mentoria",
		Status:    status,
		Attempts:  attempts,
		ClaimedAt: pgconv.TimeToPgtype(claimedAt),
		CreatedAt: pgconv.TimeToPgtype(claimedAt),
		UpdatedAt: pgconv.TimeToPgtype(claimedAt),
	}
}

func TestFulfillmentLedger_Claim(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		setup       func(q *MockLedgerQueries, db sqlc.DBTX)
		wantClaimed bool
		wantStatus  fulfillment.Status
		wantErr     bool
		expectKind  infra.RepositoryErrorKind
	}{
		{
			name: "success: unseen event is claimed",
			setup: func(q *MockLedgerQueries, db sqlc.DBTX) {
				q.On("ClaimFulfillmentRecord", ctx, db, mock.MatchedBy(func(p sqlc.ClaimFulfillmentRecordParams) bool {
					return p.EventID == "evt_1" && p.ClaimedAt.Time.Equal(ledgerNow) && p.StaleBefore.Time.Equal(ledgerClaim.StaleBefore)
				})).Return(ledgerRow("claimed", 1, ledgerNow), nil)
			},
			wantClaimed: true,
			wantStatus:  fulfillment.StatusClaimed,
		},
		{
			name: "refused: done row is reported",
			setup: func(q *MockLedgerQueries, db sqlc.DBTX) {
				q.On("ClaimFulfillmentRecord", ctx, db, mock.Anything).Return(sqlc.FulfillmentRecords{}, pgx.ErrNoRows)
				q.On("GetFulfillmentRecord", ctx, db, "evt_1").Return(ledgerRow("done", 1, ledgerNow.Add(-time.Hour)), nil)
			},
			wantClaimed: false,
			wantStatus:  fulfillment.StatusDone,
		},
		{
			name: "refused: fresh claim is reported",
			setup: func(q *MockLedgerQueries, db sqlc.DBTX) {
				q.On("ClaimFulfillmentRecord", ctx, db, mock.Anything).Return(sqlc.FulfillmentRecords{}, pgx.ErrNoRows)
				q.On("GetFulfillmentRecord", ctx, db, "evt_1").Return(ledgerRow("claimed", 1, ledgerNow.Add(-time.Minute)), nil)
			},
			wantClaimed: false,
			wantStatus:  fulfillment.StatusClaimed,
		},
		{
			name: "error: database failure",
			setup: func(q *MockLedgerQueries, db sqlc.DBTX) {
				q.On("ClaimFulfillmentRecord", ctx, db, mock.Anything).Return(sqlc.FulfillmentRecords{}, assert.AnError)
			},
			wantErr:    true,
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &MockLedgerQueries{}
			db := &mockDBTX{}
			tt.setup(q, db)
			ledger := repository.NewFulfillmentLedger(q, db)

			res, err := ledger.Claim(ctx, ledgerClaim)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.expectKind), "expected kind [%v] but got (%v)", tt.expectKind, err)
				assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantClaimed, res.Claimed)
				assert.Equal(t, tt.wantStatus, res.Record.Status)
				assert.Equal(t, "evt_1", res.Record.EventID)
			}
			q.AssertExpectations(t)
		})
	}
}

func TestFulfillmentLedger_CompleteAndFail(t *testing.T) {
	ctx := context.Background()

	t.Run("complete under the current attempt", func(t *testing.T) {
		q := &MockLedgerQueries{}
		db := &mockDBTX{}
		q.On("CompleteFulfillmentRecord", ctx, db, sqlc.CompleteFulfillmentRecordParams{
			ProcessedAt: pgconv.TimeToPgtype(ledgerNow),
			Outcome:     pgconv.StringToPgtype("fulfilled"),
			EventID:     "evt_1",
			Attempts:    2,
		}).Return(int64(1), nil)

		err := repository.NewFulfillmentLedger(q, db).Complete(ctx, "evt_1", 2, "fulfilled", ledgerNow)
		assert.NoError(t, err)
		q.AssertExpectations(t)
	})

	t.Run("complete after the claim was taken over", func(t *testing.T) {
		q := &MockLedgerQueries{}
		db := &mockDBTX{}
		q.On("CompleteFulfillmentRecord", ctx, db, mock.Anything).Return(int64(0), nil)

		err := repository.NewFulfillmentLedger(q, db).Complete(ctx, "evt_1", 1, "fulfilled", ledgerNow)
		assert.True(t, errs.Is(err, errs.ErrClaimLost))
	})

	t.Run("fail records the reason", func(t *testing.T) {
		q := &MockLedgerQueries{}
		db := &mockDBTX{}
		q.On("FailFulfillmentRecord", ctx, db, mock.MatchedBy(func(p sqlc.FailFulfillmentRecordParams) bool {
			return p.Outcome.String == "booking service down" && p.Attempts == 1
		})).Return(int64(1), nil)

		err := repository.NewFulfillmentLedger(q, db).Fail(ctx, "evt_1", 1, "booking service down", ledgerNow)
		assert.NoError(t, err)
		q.AssertExpectations(t)
	})

	t.Run("fail with database error", func(t *testing.T) {
		q := &MockLedgerQueries{}
		db := &mockDBTX{}
		q.On("FailFulfillmentRecord", ctx, db, mock.Anything).Return(int64(0), assert.AnError)

		err := repository.NewFulfillmentLedger(q, db).Fail(ctx, "evt_1", 1, "x", ledgerNow)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestFulfillmentLedger_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		q := &MockLedgerQueries{}
		db := &mockDBTX{}
		row := ledgerRow("done", 3, ledgerNow)
		row.ProcessedAt = pgconv.TimeToPgtype(ledgerNow.Add(time.Second))
		row.Outcome = pgconv.StringToPgtype("fulfilled")
		q.On("GetFulfillmentRecord", ctx, db, "evt_1").Return(row, nil)

		rec, err := repository.NewFulfillmentLedger(q, db).Get(ctx, "evt_1")
		require.NoError(t, err)
		assert.Equal(t, fulfillment.StatusDone, rec.Status)
		assert.Equal(t, int32(3), rec.Attempts)
		require.NotNil(t, rec.ProcessedAt)
		assert.Equal(t, "fulfilled", rec.Outcome)
	})

	t.Run("not found", func(t *testing.T) {
		q := &MockLedgerQueries{}
		db := &mockDBTX{}
		q.On("GetFulfillmentRecord", ctx, db, "evt_missing").Return(sqlc.FulfillmentRecords{}, pgx.ErrNoRows)

		_, err := repository.NewFulfillmentLedger(q, db).Get(ctx, "evt_missing")
		assert.True(t, errs.Is(err, errs.ErrRecordNotFound))
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}
