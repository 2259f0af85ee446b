package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned when the selected broker cannot perform an
// operation.
var ErrUnsupported = errors.New("messaging: unsupported operation")

// Messaging publishes to and subscribes from a broker.
type Messaging interface {
	io.Closer

	// Publish sends an envelope to a topic or subject.
	Publish(ctx context.Context, topic string, env Envelope) error

	// Subscribe consumes deliveries from a topic until ctx is canceled.
	// After the handler returns, the delivery is acked on nil and nacked on
	// error unless the handler settled it already.
	Subscribe(ctx context.Context, topic string, handler Handler, opts ...SubscribeOption) error
}

// Handler processes one delivery.
type Handler func(ctx context.Context, d Delivery) error

// Envelope is a broker-agnostic outgoing message.
type Envelope struct {
	// Body is the payload.
	Body []byte
	// Key partitions Kafka topics; ignored elsewhere.
	Key []byte
	// Attributes are string metadata, mapped to headers or attributes
	// depending on the broker.
	Attributes map[string]string
}

// Delivery is a broker-agnostic received message.
type Delivery interface {
	// Body returns the payload.
	Body() []byte
	// ID returns the broker message identity, best effort.
	ID() string
	// Attributes returns string metadata.
	Attributes() map[string]string
	// Timestamp returns when the broker accepted or delivered the message.
	Timestamp() time.Time
	// Ack marks the delivery processed.
	Ack(ctx context.Context) error
	// Nack requests redelivery where the broker supports it.
	Nack(ctx context.Context) error
}

type subscribeOptions struct {
	concurrency  int
	group        string
	channel      string
	queueGroup   string
	subscription string
}

// SubscribeOption tunes Subscribe.
type SubscribeOption func(*subscribeOptions)

func newSubscribeOptions(opts ...SubscribeOption) subscribeOptions {
	var so subscribeOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&so)
		}
	}
	if so.concurrency < 1 {
		so.concurrency = 1
	}
	return so
}

// WithConcurrency sets how many handlers run in parallel.
func WithConcurrency(n int) SubscribeOption {
	return func(o *subscribeOptions) { o.concurrency = n }
}

// WithGroup sets the Kafka consumer group.
func WithGroup(group string) SubscribeOption {
	return func(o *subscribeOptions) { o.group = group }
}

// WithChannel sets the NSQ channel.
func WithChannel(channel string) SubscribeOption {
	return func(o *subscribeOptions) { o.channel = channel }
}

// WithQueueGroup sets the NATS queue group.
func WithQueueGroup(queueGroup string) SubscribeOption {
	return func(o *subscribeOptions) { o.queueGroup = queueGroup }
}

// WithSubscription sets the Pub/Sub subscription consumed for the topic.
func WithSubscription(subscription string) SubscribeOption {
	return func(o *subscribeOptions) { o.subscription = subscription }
}
