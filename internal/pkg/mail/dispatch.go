package mail

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// Dispatcher wraps a Mail with a per-send deadline and fibonacci retry so a
// flaky relay does not turn into an instant failure for the caller. The
// result is still reported synchronously: callers that need rollback on
// dispatch failure get a definitive answer.
type Dispatcher struct {
	mail     Mail
	timeout  time.Duration
	attempts uint64
}

// NewDispatcher builds a Dispatcher. timeout bounds a whole Send including
// retries; attempts is the maximum number of tries.
func NewDispatcher(m Mail, timeout time.Duration, attempts uint64) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if attempts == 0 {
		attempts = 3
	}

	return &Dispatcher{mail: m, timeout: timeout, attempts: attempts}
}

// Send delivers the message, retrying transient failures.
func (d *Dispatcher) Send(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	backoff := retry.WithMaxRetries(d.attempts-1, retry.NewFibonacci(200*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := d.mail.Send(ctx, msg); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

// Close closes the underlying provider.
func (d *Dispatcher) Close() error {
	return d.mail.Close()
}
