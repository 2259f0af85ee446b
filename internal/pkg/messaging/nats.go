package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
)

var (
	// ErrNATSURLRequired is returned when the server URL is missing.
	ErrNATSURLRequired = errors.New("messaging: nats url is required")
	// ErrNATSSubjectRequired is returned when the subject is empty.
	ErrNATSSubjectRequired = errors.New("messaging: nats subject is required")
	// ErrNATSHandlerRequired is returned when Subscribe lacks a handler.
	ErrNATSHandlerRequired = errors.New("messaging: nats handler is required")
)

// NATSConfig configures the NATS backend.
type NATSConfig struct {
	// URL is the server address.
	URL string
	// Options are passed to the client.
	Options []nats.Option
}

// NATS implements Messaging on nats.go.
type NATS struct {
	conn *nats.Conn

	mu     sync.Mutex
	subs   []*nats.Subscription
	closed bool
}

// NewNATS connects to the server and returns the client.
func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	conn, err := nats.Connect(cfg.URL, cfg.Options...)
	if err != nil {
		return nil, fmt.Errorf("messaging: nats connect: %w", err)
	}

	return &NATS{conn: conn}, nil
}

// Close drains subscriptions and the connection.
func (n *NATS) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	subs := append([]*nats.Subscription{}, n.subs...)
	n.mu.Unlock()

	var errs error
	for _, sub := range subs {
		errs = errors.Join(errs, sub.Drain())
	}
	errs = errors.Join(errs, n.conn.Drain())
	n.conn.Close()
	return errs
}

// Publish sends to a subject and flushes.
func (n *NATS) Publish(ctx context.Context, topic string, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrNATSSubjectRequired
	}

	msg := nats.NewMsg(topic)
	msg.Data = env.Body
	for key, value := range env.Attributes {
		msg.Header.Add(key, value)
	}

	if err := n.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("messaging: nats publish: %w", err)
	}
	if err := n.conn.Flush(); err != nil {
		return fmt.Errorf("messaging: nats flush: %w", err)
	}
	return nil
}

// Subscribe consumes a subject, optionally in a queue group, until ctx ends.
func (n *NATS) Subscribe(ctx context.Context, topic string, handler Handler, opts ...SubscribeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrNATSSubjectRequired
	}
	if handler == nil {
		return ErrNATSHandlerRequired
	}

	so := newSubscribeOptions(opts...)

	msgCh := make(chan *nats.Msg, so.concurrency)
	sub, err := n.conn.QueueSubscribe(topic, so.queueGroup, func(m *nats.Msg) {
		select {
		case msgCh <- m:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("messaging: nats subscribe: %w", err)
	}

	if err := n.track(sub); err != nil {
		return errors.Join(err, sub.Drain())
	}
	if err := n.conn.Flush(); err != nil {
		return errors.Join(fmt.Errorf("messaging: nats flush: %w", err), sub.Drain())
	}

	var wg sync.WaitGroup
	for range so.concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range msgCh {
				d := &natsDelivery{msg: m, receivedAt: time.Now()}
				settle(ctx, d, runHandler(ctx, "nats", handler, d))
			}
		}()
	}

	<-ctx.Done()
	drainErr := sub.Drain()
	close(msgCh)
	wg.Wait()

	return errors.Join(ctx.Err(), drainErr)
}

func (n *NATS) track(sub *nats.Subscription) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return io.ErrClosedPipe
	}
	n.subs = append(n.subs, sub)
	return nil
}

type natsDelivery struct {
	msg        *nats.Msg
	receivedAt time.Time
	settled    atomic.Bool
}

func (d *natsDelivery) Body() []byte { return d.msg.Data }

func (d *natsDelivery) ID() string { return "" }

func (d *natsDelivery) Attributes() map[string]string {
	if len(d.msg.Header) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(d.msg.Header))
	for key, values := range d.msg.Header {
		if len(values) > 0 {
			attrs[key] = values[0]
		}
	}
	return attrs
}

func (d *natsDelivery) Timestamp() time.Time { return d.receivedAt }

func (d *natsDelivery) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.settled.Swap(true) {
		return nil
	}
	if err := d.msg.Ack(); err != nil && !isNATSAckUnsupported(err) {
		return err
	}
	return nil
}

func (d *natsDelivery) Nack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.settled.Swap(true) {
		return nil
	}
	if err := d.msg.Nak(); err != nil && !isNATSAckUnsupported(err) {
		return err
	}
	return nil
}

// Core NATS subscriptions have no ack semantics; treat those errors as done.
func isNATSAckUnsupported(err error) bool {
	return errors.Is(err, nats.ErrMsgNoReply) || errors.Is(err, nats.ErrMsgNotBound)
}
