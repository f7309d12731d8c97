//go:build unit

package fulfillment_test

import (
	"testing"
	"time"

	"checkout-fulfillment/internal/domain/fulfillment"

	"github.com/stretchr/testify/assert"
)

func TestRecordReclaimable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	staleBefore := now.Add(-5 * time.Minute)

	tests := []struct {
		name      string
		status    fulfillment.Status
		claimedAt time.Time
		want      bool
	}{
		{name: "done is final", status: fulfillment.StatusDone, claimedAt: now.Add(-time.Hour), want: false},
		{name: "failed is released", status: fulfillment.StatusFailed, claimedAt: now, want: true},
		{name: "fresh claim is held", status: fulfillment.StatusClaimed, claimedAt: now.Add(-time.Minute), want: false},
		{name: "claim exactly at the window is held", status: fulfillment.StatusClaimed, claimedAt: staleBefore, want: false},
		{name: "stale claim is released", status: fulfillment.StatusClaimed, claimedAt: staleBefore.Add(-time.Nanosecond), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := fulfillment.Record{EventID: "evt_1", Status: tt.status, ClaimedAt: tt.claimedAt}
			assert.Equal(t, tt.want, r.Reclaimable(staleBefore))
		})
	}
}

func TestClaimRecords(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := fulfillment.Claim{EventID: "evt_1", EventType: "checkout.completed", SessionID: "cs_1", Kind: "mentoria", Now: now}

	t.Run("新規クレーム", func(t *testing.T) {
		r := c.NewRecord()
		assert.Equal(t, fulfillment.StatusClaimed, r.Status)
		assert.Equal(t, int32(1), r.Attempts)
		assert.Equal(t, now, r.ClaimedAt)
		assert.Equal(t, now, r.CreatedAt)
		assert.Nil(t, r.ProcessedAt)
	})

	t.Run("引き継ぎで試行回数を加算", func(t *testing.T) {
		processed := now.Add(-time.Hour)
		existing := fulfillment.Record{
			EventID:     "evt_1",
			Status:      fulfillment.StatusFailed,
			Attempts:    2,
			ClaimedAt:   now.Add(-time.Hour),
			ProcessedAt: &processed,
			Outcome:     "booking service unavailable",
			CreatedAt:   now.Add(-2 * time.Hour),
		}
		r := c.Takeover(existing)
		assert.Equal(t, fulfillment.StatusClaimed, r.Status)
		assert.Equal(t, int32(3), r.Attempts)
		assert.Equal(t, now, r.ClaimedAt)
		assert.Equal(t, existing.CreatedAt, r.CreatedAt)
		assert.Nil(t, r.ProcessedAt)
		assert.Empty(t, r.Outcome)
	})

	t.Run("Status.Valid", func(t *testing.T) {
		assert.True(t, fulfillment.StatusDone.Valid())
		assert.False(t, fulfillment.Status("unseen").Valid())
	})
}
