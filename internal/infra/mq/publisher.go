package mq

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"checkout-fulfillment/internal/domain/mentoring"
	"checkout-fulfillment/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPublisherClosed = errs.New("notification publisher is closed")

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// session owns one connection and the channel opened on it.
type session struct {
	conn *amqp.Connection
	*amqp.Channel
}

func (s *session) IsClosed() bool {
	return s.Channel.IsClosed() || s.conn.IsClosed()
}

func (s *session) Close() error {
	_ = s.Channel.Close()
	if s.conn.IsClosed() {
		return nil
	}
	return s.conn.Close()
}

func openSession(url, exchange string) (*session, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errs.Wrap(err, "dial rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "open channel")
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrapf(err, "declare exchange %s", exchange)
	}
	return &session{conn: conn, Channel: ch}, nil
}

// Publisher pushes notifications to a topic exchange. The message id is the
// fulfillment idempotency ref so consumers can drop redeliveries.
// A dropped connection is redialed on the next Push.
type Publisher struct {
	mu         sync.Mutex
	ch         channel
	dial       func() (channel, error)
	closed     bool
	exchange   string
	routingKey string
}

type pushMessage struct {
	RecipientID    string `json:"recipientId"`
	Message        string `json:"message"`
	IdempotencyRef string `json:"idempotencyRef"`
}

func NewPublisher(url, exchange, routingKey string) (*Publisher, error) {
	dial := func() (channel, error) {
		s, err := openSession(url, exchange)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	ch, err := dial()
	if err != nil {
		return nil, err
	}
	return &Publisher{ch: ch, dial: dial, exchange: exchange, routingKey: routingKey}, nil
}

func newPublisherWithChannel(ch channel, exchange, routingKey string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, routingKey: routingKey}
}

func (p *Publisher) Push(ctx context.Context, n mentoring.Notification) error {
	b, err := json.Marshal(pushMessage{
		RecipientID:    n.RecipientID,
		Message:        n.Message,
		IdempotencyRef: n.IdempotencyRef,
	})
	if err != nil {
		return errs.Wrap(err, "encode notification")
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    n.IdempotencyRef,
		Timestamp:    time.Now().UTC(),
		Body:         b,
	}

	ch, err := p.current()
	if err != nil {
		return errs.Wrapf(err, "publish notification %s", n.IdempotencyRef)
	}
	err = ch.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, msg)
	if err != nil && ch.IsClosed() {
		// The broker went away under us; one retry on a fresh connection.
		if ch, err = p.current(); err == nil {
			err = ch.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, msg)
		}
	}
	if err != nil {
		return errs.Wrapf(err, "publish notification %s", n.IdempotencyRef)
	}
	return nil
}

// current returns a live channel, redialing when the previous one is closed.
func (p *Publisher) current() (channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrPublisherClosed
	}
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.dial == nil {
		return nil, amqp.ErrClosed
	}
	ch, err := p.dial()
	if err != nil {
		return nil, errs.Wrap(err, "reconnect rabbitmq")
	}
	p.ch = ch
	return ch, nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.ch == nil {
		return nil
	}
	err := p.ch.Close()
	p.ch = nil
	return err
}
