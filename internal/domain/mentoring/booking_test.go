//go:build unit

package mentoring_test

import (
	"testing"
	"time"

	"checkout-fulfillment/internal/domain/mentoring"
	"checkout-fulfillment/internal/domain/payment"
	"checkout-fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() payment.Event {
	return payment.Event{
		ExternalEventID: "evt_1",
		Type:            payment.EventCheckoutCompleted,
		SessionID:       "cs_1",
		Metadata: payment.Metadata{
			"kind":     "mentoria",
			"mentorId": "m1",
			"buyerId":  "u1",
			"startISO": "2026-05-01T16:00:00Z",
			"endISO":   "2026-05-01T17:00:00Z",
		},
	}
}

func TestBookingFromEvent(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		b, err := mentoring.BookingFromEvent(validEvent())
		require.NoError(t, err)
		assert.Equal(t, "m1", b.MentorID)
		assert.Equal(t, "u1", b.MenteeID)
		assert.Equal(t, "cs_1", b.SessionID)
		assert.Equal(t, "evt_1", b.IdempotencyRef)
		assert.Equal(t, time.Hour, b.Slot.Duration())
		assert.Equal(t, time.UTC, b.Slot.Start().Location())
	})

	t.Run("タイムゾーン付きの時刻はUTCに正規化", func(t *testing.T) {
		ev := validEvent()
		ev.Metadata["startISO"] = "2026-05-01T10:00:00-06:00"
		ev.Metadata["endISO"] = "2026-05-01T11:00:00-06:00"
		b, err := mentoring.BookingFromEvent(ev)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 5, 1, 16, 0, 0, 0, time.UTC), b.Slot.Start())
	})

	invalid := map[string]func(m payment.Metadata){
		"mentorId missing":   func(m payment.Metadata) { delete(m, "mentorId") },
		"buyerId missing":    func(m payment.Metadata) { delete(m, "buyerId") },
		"startISO malformed": func(m payment.Metadata) { m["startISO"] = "tomorrow" },
		"endISO missing":     func(m payment.Metadata) { delete(m, "endISO") },
		"end before start":   func(m payment.Metadata) { m["endISO"] = "2026-05-01T15:00:00Z" },
		"zero length slot":   func(m payment.Metadata) { m["endISO"] = m["startISO"] },
	}
	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			ev := validEvent()
			mutate(ev.Metadata)
			_, err := mentoring.BookingFromEvent(ev)
			assert.True(t, errs.Is(err, errs.ErrInvalidFulfillment))
		})
	}
}

func TestBookingFromEvent_MenteeFromCheckout(t *testing.T) {
	clientMeta := payment.Metadata{
		"kind":     "mentoria",
		"mentorId": "m1",
		"startISO": "2026-05-01T16:00:00Z",
		"endISO":   "2026-05-01T17:00:00Z",
	}
	ev := validEvent()

	t.Run("クライアント指定のメタデータだけでは予約しない", func(t *testing.T) {
		ev.Metadata = clientMeta
		_, err := mentoring.BookingFromEvent(ev)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInvalidFulfillment))
		assert.Contains(t, err.Error(), "buyerId")
	})

	t.Run("チェックアウトで付与された購入者がメンティー", func(t *testing.T) {
		ev.Metadata = clientMeta.Merge("mentoria", "u1")
		b, err := mentoring.BookingFromEvent(ev)
		require.NoError(t, err)
		assert.Equal(t, "u1", b.MenteeID)
		assert.Equal(t, "m1", b.MentorID)
	})
}

func TestBookedNotification(t *testing.T) {
	b, err := mentoring.BookingFromEvent(validEvent())
	require.NoError(t, err)

	n := mentoring.BookedNotification(b)
	assert.Equal(t, "m1", n.RecipientID)
	assert.Equal(t, "evt_1", n.IdempotencyRef)
	assert.Contains(t, n.Message, "2026-05-01 16:00")
}
