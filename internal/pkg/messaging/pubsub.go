package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"google.golang.org/api/option"
)

var (
	// ErrPubSubProjectIDRequired is returned when no project is configured.
	ErrPubSubProjectIDRequired = errors.New("messaging: pubsub project id is required")
	// ErrPubSubTopicRequired is returned when the topic is empty.
	ErrPubSubTopicRequired = errors.New("messaging: pubsub topic is required")
	// ErrPubSubSubscriptionRequired is returned when Subscribe lacks a
	// subscription name.
	ErrPubSubSubscriptionRequired = errors.New("messaging: pubsub subscription is required")
	// ErrPubSubHandlerRequired is returned when Subscribe lacks a handler.
	ErrPubSubHandlerRequired = errors.New("messaging: pubsub handler is required")
)

// PubSubConfig configures the Google Pub/Sub backend.
type PubSubConfig struct {
	// ProjectID is the Google Cloud project.
	ProjectID string
	// ClientOptions customize the client, typically credentials.
	ClientOptions []option.ClientOption
}

// PubSub implements Messaging on cloud.google.com/go/pubsub.
type PubSub struct {
	client *pubsub.Client

	mu         sync.Mutex
	publishers map[string]*pubsub.Publisher
	closed     bool
}

// NewPubSub builds a Pub/Sub client.
func NewPubSub(ctx context.Context, cfg PubSubConfig) (*PubSub, error) {
	if cfg.ProjectID == "" {
		return nil, ErrPubSubProjectIDRequired
	}

	client, err := pubsub.NewClient(ctx, cfg.ProjectID, cfg.ClientOptions...)
	if err != nil {
		return nil, fmt.Errorf("messaging: pubsub new client: %w", err)
	}

	return &PubSub{client: client, publishers: map[string]*pubsub.Publisher{}}, nil
}

// Close stops publishers and the client.
func (p *PubSub) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	pubs := make([]*pubsub.Publisher, 0, len(p.publishers))
	for _, pub := range p.publishers {
		pubs = append(pubs, pub)
	}
	p.publishers = nil
	p.mu.Unlock()

	for _, pub := range pubs {
		pub.Stop()
	}
	return p.client.Close()
}

// Publish sends to a topic and waits for the server id.
func (p *PubSub) Publish(ctx context.Context, topic string, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrPubSubTopicRequired
	}

	pub, err := p.publisher(topic)
	if err != nil {
		return err
	}

	res := pub.Publish(ctx, &pubsub.Message{Data: env.Body, Attributes: env.Attributes})
	if _, err := res.Get(ctx); err != nil {
		return fmt.Errorf("messaging: pubsub publish: %w", err)
	}
	return nil
}

// Subscribe receives from the subscription bound via WithSubscription.
func (p *PubSub) Subscribe(ctx context.Context, topic string, handler Handler, opts ...SubscribeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if handler == nil {
		return ErrPubSubHandlerRequired
	}

	so := newSubscribeOptions(opts...)
	if so.subscription == "" {
		return ErrPubSubSubscriptionRequired
	}

	sub := p.client.Subscriber(so.subscription)
	if so.concurrency > 0 {
		sub.ReceiveSettings.NumGoroutines = so.concurrency
	}

	return sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		d := &pubsubDelivery{topic: topic, msg: m}
		settle(ctx, d, runHandler(ctx, "pubsub", handler, d))
	})
}

func (p *PubSub) publisher(topic string) (*pubsub.Publisher, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, io.ErrClosedPipe
	}
	if pub, ok := p.publishers[topic]; ok {
		return pub, nil
	}

	pub := p.client.Publisher(topic)
	p.publishers[topic] = pub
	return pub, nil
}

type pubsubDelivery struct {
	topic   string
	msg     *pubsub.Message
	settled atomic.Bool
}

func (d *pubsubDelivery) Body() []byte { return d.msg.Data }

func (d *pubsubDelivery) ID() string { return d.msg.ID }

func (d *pubsubDelivery) Attributes() map[string]string { return d.msg.Attributes }

func (d *pubsubDelivery) Timestamp() time.Time { return d.msg.PublishTime }

func (d *pubsubDelivery) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !d.settled.Swap(true) {
		d.msg.Ack()
	}
	return nil
}

func (d *pubsubDelivery) Nack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !d.settled.Swap(true) {
		d.msg.Nack()
	}
	return nil
}
