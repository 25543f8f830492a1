package common

import (
	"context"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Queue string

// CacheInvalidationQueue is the only queue this service publishes to. It is
// declared durable so invalidation jobs survive a broker restart.
const CacheInvalidationQueue Queue = "cache-invalidation"

var ErrBrokerNotReady = errors.New("message broker is not ready")

type MessageProducer interface {
	IsReady() bool
	Publish(ctx context.Context, queue Queue, body []byte) error
}

type BrokerConfig struct {
	Host     string
	Port     string
	User     string
	Password string
}

func (c BrokerConfig) URI() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.User, c.Password, c.Host, c.Port)
}

// MessageBroker owns a single long-lived connection and channel to RabbitMQ.
// A broker that never came up leaves the service degraded (stale downstream
// caches) but still able to serve reads and writes, so construction never
// dials on its own.
type MessageBroker struct {
	mu  sync.Mutex
	cfg BrokerConfig

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewMessageBroker(cfg BrokerConfig) *MessageBroker {
	return &MessageBroker{cfg: cfg}
}

// Connect establishes the connection and channel. Safe to call repeatedly; a
// ready broker is left untouched.
func (mb *MessageBroker) Connect() error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	return mb.connect()
}

func (mb *MessageBroker) connect() error {
	if mb.ready() {
		return nil
	}

	conn, err := amqp.Dial(mb.cfg.URI())
	if err != nil {
		return fmt.Errorf("could not connect to AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("could not open channel: %w", err)
	}

	mb.conn = conn
	mb.ch = ch

	return nil
}

func (mb *MessageBroker) ready() bool {
	return mb.conn != nil && !mb.conn.IsClosed() && mb.ch != nil && !mb.ch.IsClosed()
}

func (mb *MessageBroker) IsReady() bool {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	return mb.ready()
}

// Publish declares the queue as durable and publishes the message with the
// persistent delivery mode so the broker retains it across restarts. A dead
// channel triggers one reconnect attempt; beyond that the caller decides what
// a failed publish means.
func (mb *MessageBroker) Publish(ctx context.Context, queue Queue, body []byte) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if !mb.ready() {
		if err := mb.connect(); err != nil {
			return ErrBrokerNotReady
		}
	}

	_, err := mb.ch.QueueDeclare(string(queue), true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("could not declare queue %s: %w", queue, err)
	}

	err = mb.ch.PublishWithContext(ctx, "", string(queue), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("could not publish message: %w", err)
	}

	return nil
}

// Consume drains a queue. Only used by tests to verify published payloads.
func (mb *MessageBroker) Consume(queue Queue) (<-chan amqp.Delivery, error) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if !mb.ready() {
		return nil, ErrBrokerNotReady
	}

	msgs, err := mb.ch.Consume(string(queue), "", true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("could not consume message: %w", err)
	}

	return msgs, nil
}

// Close closes the channel and connection of the message broker.
func (mb *MessageBroker) Close() error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if mb.ch != nil {
		if err := mb.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			return err
		}
	}

	if mb.conn != nil {
		if err := mb.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			return err
		}
	}

	return nil
}
