//go:build e2e

package ledger_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"checkout-fulfillment/internal/domain/fulfillment"
	"checkout-fulfillment/internal/infra/repository"
	sqlc "checkout-fulfillment/internal/infra/sqlc/generated"
	"checkout-fulfillment/internal/pkg/errs"
	"checkout-fulfillment/tests/common/dbtest"
	"checkout-fulfillment/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type LedgerSuite struct {
	e2e.SharedSuite
	ledger *repository.FulfillmentLedger
}

func (s *LedgerSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.ledger = repository.NewFulfillmentLedger(sqlc.New(), s.DB)
}

func (s *LedgerSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestLedgerSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(LedgerSuite))
}

func claimAt(eventID string, now time.Time) fulfillment.Claim {
	return fulfillment.Claim{
		EventID:     eventID,
		EventType:   "checkout.completed",
		SessionID:   "cs_ledger",
		Kind:        "mentoria",
		Now:         now,
		StaleBefore: now.Add(-5 * time.Minute),
	}
}

func (s *LedgerSuite) TestClaim() {
	s.Run("正常系: 同時の claim は 1 つだけ成功する", func() {
		t := s.T()
		ctx := context.Background()
		now := time.Now()

		const workers = 16
		var claimed atomic.Int32
		var wg sync.WaitGroup
		failures := make(chan error, workers)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := s.ledger.Claim(ctx, claimAt("evt_ledger_race", now))
				if err != nil {
					failures <- err
					return
				}
				if res.Claimed {
					claimed.Add(1)
				}
			}()
		}
		wg.Wait()
		close(failures)

		for err := range failures {
			require.NoError(t, err)
		}
		require.EqualValues(t, 1, claimed.Load())

		status, attempts := dbtest.FulfillmentStatus(t, s.DB, "evt_ledger_race")
		require.Equal(t, "claimed", status)
		require.EqualValues(t, 1, attempts)
	})

	s.Run("正常系: 完了後の claim は done の記録を返す", func() {
		t := s.T()
		ctx := context.Background()
		now := time.Now()

		res, err := s.ledger.Claim(ctx, claimAt("evt_ledger_done", now))
		require.NoError(t, err)
		require.True(t, res.Claimed)
		require.NoError(t, s.ledger.Complete(ctx, "evt_ledger_done", res.Record.Attempts, "fulfilled", now))

		again, err := s.ledger.Claim(ctx, claimAt("evt_ledger_done", now.Add(time.Hour)))
		require.NoError(t, err)
		require.False(t, again.Claimed)
		require.Equal(t, fulfillment.StatusDone, again.Record.Status)
		require.Equal(t, "fulfilled", again.Record.Outcome)
	})

	s.Run("正常系: 古い claim は引き継がれ旧 attempt の完了は拒否される", func() {
		t := s.T()
		ctx := context.Background()
		now := time.Now()
		dbtest.InsertFulfillmentRecord(t, s.DB, "evt_ledger_stale", "claimed", 1, now.Add(-10*time.Minute))

		res, err := s.ledger.Claim(ctx, claimAt("evt_ledger_stale", now))
		require.NoError(t, err)
		require.True(t, res.Claimed)
		require.EqualValues(t, 2, res.Record.Attempts)

		err = s.ledger.Complete(ctx, "evt_ledger_stale", 1, "fulfilled", now)
		require.True(t, errs.Is(err, errs.ErrClaimLost), "got %v", err)
		require.NoError(t, s.ledger.Complete(ctx, "evt_ledger_stale", 2, "fulfilled", now))
	})

	s.Run("正常系: 失敗した記録は再度 claim できる", func() {
		t := s.T()
		ctx := context.Background()
		now := time.Now()

		res, err := s.ledger.Claim(ctx, claimAt("evt_ledger_failed", now))
		require.NoError(t, err)
		require.NoError(t, s.ledger.Fail(ctx, "evt_ledger_failed", res.Record.Attempts, "booking service unavailable", now))

		status, _ := dbtest.FulfillmentStatus(t, s.DB, "evt_ledger_failed")
		require.Equal(t, "failed", status)

		retry, err := s.ledger.Claim(ctx, claimAt("evt_ledger_failed", now.Add(time.Second)))
		require.NoError(t, err)
		require.True(t, retry.Claimed)
		require.EqualValues(t, 2, retry.Record.Attempts)
	})
}

func (s *LedgerSuite) TestGet() {
	s.Run("異常系: 存在しないイベントは ErrRecordNotFound", func() {
		t := s.T()

		_, err := s.ledger.Get(context.Background(), "evt_ledger_missing")
		require.True(t, errs.Is(err, errs.ErrRecordNotFound), "got %v", err)
	})
}
