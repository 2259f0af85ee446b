package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
)

var (
	// ErrKafkaBrokersRequired is returned when no broker addresses are set.
	ErrKafkaBrokersRequired = errors.New("messaging: kafka brokers are required")
	// ErrKafkaTopicRequired is returned when the topic is empty.
	ErrKafkaTopicRequired = errors.New("messaging: kafka topic is required")
	// ErrKafkaGroupRequired is returned when Subscribe lacks a consumer group.
	ErrKafkaGroupRequired = errors.New("messaging: kafka consumer group is required")
	// ErrKafkaHandlerRequired is returned when Subscribe lacks a handler.
	ErrKafkaHandlerRequired = errors.New("messaging: kafka handler is required")
)

// KafkaConfig configures the Kafka backend.
type KafkaConfig struct {
	// Brokers lists broker addresses.
	Brokers []string
	// Dialer configures broker connections, optional.
	Dialer *kafka.Dialer
}

// Kafka implements Messaging on segmentio/kafka-go.
type Kafka struct {
	brokers []string
	dialer  *kafka.Dialer

	mu      sync.Mutex
	writers map[string]*kafka.Writer
	readers []*kafka.Reader
	closed  bool
}

// NewKafka builds a Kafka client.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}

	return &Kafka{
		brokers: append([]string{}, cfg.Brokers...),
		dialer:  cfg.Dialer,
		writers: map[string]*kafka.Writer{},
	}, nil
}

// Close shuts down all writers and readers.
func (k *Kafka) Close() error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return nil
	}
	k.closed = true
	writers := make([]*kafka.Writer, 0, len(k.writers))
	for _, w := range k.writers {
		writers = append(writers, w)
	}
	readers := append([]*kafka.Reader{}, k.readers...)
	k.writers, k.readers = nil, nil
	k.mu.Unlock()

	var errs error
	for _, r := range readers {
		errs = errors.Join(errs, r.Close())
	}
	for _, w := range writers {
		errs = errors.Join(errs, w.Close())
	}
	return errs
}

// Publish writes one message to topic.
func (k *Kafka) Publish(ctx context.Context, topic string, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrKafkaTopicRequired
	}

	writer, err := k.writer(topic)
	if err != nil {
		return err
	}

	msg := kafka.Message{Key: env.Key, Value: env.Body, Time: time.Now()}
	for key, value := range env.Attributes {
		msg.Headers = append(msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("messaging: kafka publish: %w", err)
	}
	return nil
}

// Subscribe consumes topic in the configured group until ctx ends.
func (k *Kafka) Subscribe(ctx context.Context, topic string, handler Handler, opts ...SubscribeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topic == "" {
		return ErrKafkaTopicRequired
	}
	if handler == nil {
		return ErrKafkaHandlerRequired
	}

	so := newSubscribeOptions(opts...)
	if so.group == "" {
		return ErrKafkaGroupRequired
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  k.brokers,
		GroupID:  so.group,
		Topic:    topic,
		MaxBytes: 10e6,
		Dialer:   k.dialer,
	})
	if err := k.track(reader); err != nil {
		return errors.Join(err, reader.Close())
	}
	defer func() {
		k.untrack(reader)
		reader.Close()
	}()

	msgCh := make(chan kafka.Message)
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var fetchErr error
	go func() {
		defer close(msgCh)
		for {
			m, err := reader.FetchMessage(fetchCtx)
			if err != nil {
				fetchErr = err
				return
			}
			select {
			case msgCh <- m:
			case <-fetchCtx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for range so.concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range msgCh {
				d := &kafkaDelivery{reader: reader, msg: m}
				settle(ctx, d, runHandler(ctx, "kafka", handler, d))
			}
		}()
	}
	wg.Wait()

	if fetchErr != nil && !errors.Is(fetchErr, context.Canceled) && !errors.Is(fetchErr, io.EOF) {
		return fmt.Errorf("messaging: kafka consume: %w", fetchErr)
	}
	return ctx.Err()
}

func (k *Kafka) writer(topic string) (*kafka.Writer, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil, io.ErrClosedPipe
	}
	if w, ok := k.writers[topic]; ok {
		return w, nil
	}

	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  k.brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		Dialer:   k.dialer,
	})
	k.writers[topic] = w
	return w, nil
}

func (k *Kafka) track(r *kafka.Reader) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return io.ErrClosedPipe
	}
	k.readers = append(k.readers, r)
	return nil
}

func (k *Kafka) untrack(r *kafka.Reader) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for i := range k.readers {
		if k.readers[i] == r {
			k.readers = append(k.readers[:i], k.readers[i+1:]...)
			return
		}
	}
}

type kafkaDelivery struct {
	reader  *kafka.Reader
	msg     kafka.Message
	settled atomic.Bool
}

func (d *kafkaDelivery) Body() []byte { return d.msg.Value }

func (d *kafkaDelivery) ID() string {
	return fmt.Sprintf("%s/%d/%d", d.msg.Topic, d.msg.Partition, d.msg.Offset)
}

func (d *kafkaDelivery) Attributes() map[string]string {
	if len(d.msg.Headers) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(d.msg.Headers))
	for _, h := range d.msg.Headers {
		if _, ok := attrs[h.Key]; !ok {
			attrs[h.Key] = string(h.Value)
		}
	}
	return attrs
}

func (d *kafkaDelivery) Timestamp() time.Time { return d.msg.Time }

func (d *kafkaDelivery) Ack(ctx context.Context) error {
	if d.settled.Swap(true) {
		return nil
	}
	return d.reader.CommitMessages(ctx, d.msg)
}

// Nack leaves the offset uncommitted so the group sees the message again
// after a rebalance or restart.
func (d *kafkaDelivery) Nack(_ context.Context) error {
	d.settled.Store(true)
	return nil
}
