//go:build unit

package mq

import (
	"context"
	"encoding/json"
	"testing"

	"checkout-fulfillment/internal/domain/mentoring"
	"checkout-fulfillment/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msgs     []amqp.Publishing
	err      error
	closed   bool
	// dead reports the channel as closed by the broker.
	dead     bool
	// dieOnErr marks the channel dead when a publish fails.
	dieOnErr bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		if f.dieOnErr {
			f.dead = true
		}
		return f.err
	}
	f.exchange = exchange
	f.key = key
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeChannel) IsClosed() bool {
	return f.dead || f.closed
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Push(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisherWithChannel(ch, "notifications", "notification.push")

	err := p.Push(context.Background(), mentoring.Notification{RecipientID: "m1", Message: "hola", IdempotencyRef: "evt_1"})
	require.NoError(t, err)

	require.Len(t, ch.msgs, 1)
	assert.Equal(t, "notifications", ch.exchange)
	assert.Equal(t, "notification.push", ch.key)
	assert.Equal(t, "evt_1", ch.msgs[0].MessageId)
	assert.Equal(t, amqp.Persistent, ch.msgs[0].DeliveryMode)

	var body pushMessage
	require.NoError(t, json.Unmarshal(ch.msgs[0].Body, &body))
	assert.Equal(t, pushMessage{RecipientID: "m1", Message: "hola", IdempotencyRef: "evt_1"}, body)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_PushError(t *testing.T) {
	p := newPublisherWithChannel(&fakeChannel{err: amqp.ErrClosed}, "notifications", "notification.push")

	err := p.Push(context.Background(), mentoring.Notification{IdempotencyRef: "evt_1"})
	assert.ErrorIs(t, err, amqp.ErrClosed)
}

func TestPublisher_Reconnect(t *testing.T) {
	ctx := context.Background()
	n := mentoring.Notification{RecipientID: "m1", Message: "hola", IdempotencyRef: "evt_1"}

	t.Run("切断済みなら再接続してから送る", func(t *testing.T) {
		stale := &fakeChannel{dead: true}
		fresh := &fakeChannel{}
		p := newPublisherWithChannel(stale, "notifications", "notification.push")
		dials := 0
		p.dial = func() (channel, error) {
			dials++
			return fresh, nil
		}

		require.NoError(t, p.Push(ctx, n))
		assert.Equal(t, 1, dials)
		assert.True(t, stale.closed)
		assert.Empty(t, stale.msgs)
		require.Len(t, fresh.msgs, 1)

		require.NoError(t, p.Push(ctx, n))
		assert.Equal(t, 1, dials)
		assert.Len(t, fresh.msgs, 2)
	})

	t.Run("送信中に切断されたら一度だけ再送", func(t *testing.T) {
		broken := &fakeChannel{err: amqp.ErrClosed, dieOnErr: true}
		fresh := &fakeChannel{}
		p := newPublisherWithChannel(broken, "notifications", "notification.push")
		p.dial = func() (channel, error) { return fresh, nil }

		require.NoError(t, p.Push(ctx, n))
		require.Len(t, fresh.msgs, 1)
		assert.Equal(t, "evt_1", fresh.msgs[0].MessageId)
	})

	t.Run("再送も失敗ならエラー", func(t *testing.T) {
		p := newPublisherWithChannel(&fakeChannel{err: amqp.ErrClosed, dieOnErr: true}, "notifications", "notification.push")
		p.dial = func() (channel, error) {
			return &fakeChannel{err: amqp.ErrClosed, dieOnErr: true}, nil
		}

		err := p.Push(ctx, n)
		assert.ErrorIs(t, err, amqp.ErrClosed)
	})

	t.Run("再接続失敗の後に復旧", func(t *testing.T) {
		fresh := &fakeChannel{}
		p := newPublisherWithChannel(&fakeChannel{dead: true}, "notifications", "notification.push")
		dialErr := errs.New("connection refused")
		p.dial = func() (channel, error) {
			if dialErr != nil {
				return nil, dialErr
			}
			return fresh, nil
		}

		err := p.Push(ctx, n)
		require.Error(t, err)
		assert.True(t, errs.Is(err, dialErr))

		dialErr = nil
		require.NoError(t, p.Push(ctx, n))
		assert.Len(t, fresh.msgs, 1)
	})

	t.Run("Close後は再接続しない", func(t *testing.T) {
		p := newPublisherWithChannel(&fakeChannel{}, "notifications", "notification.push")
		p.dial = func() (channel, error) {
			t.Fatal("dial after Close")
			return nil, nil
		}

		require.NoError(t, p.Close())
		err := p.Push(ctx, n)
		assert.True(t, errs.Is(err, ErrPublisherClosed))
	})
}
