package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/smashstrix/smashstrix/internal/pkg/stacktrace"
)

// runHandler shields broker consume loops from handler panics.
func runHandler(ctx context.Context, broker string, handler Handler, d Delivery) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			stack := debug.Stack()
			if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
				slog.ErrorContext(ctx, "panic in messaging handler", "broker", broker, "panic", rvr, "stack", paths)
			} else {
				slog.ErrorContext(ctx, "panic in messaging handler", "broker", broker, "panic", rvr, "stack", string(stack))
			}
			err = fmt.Errorf("messaging: panic in %s handler: %v", broker, rvr)
		}
	}()

	return handler(ctx, d)
}

// settle acks or nacks a delivery by handler outcome, ignoring settle errors
// beyond logging since the broker will redeliver anyway.
func settle(ctx context.Context, d Delivery, handlerErr error) {
	if handlerErr == nil {
		if err := d.Ack(ctx); err != nil {
			slog.WarnContext(ctx, "message ack failed", "id", d.ID(), "err", err)
		}
		return
	}

	if err := d.Nack(ctx); err != nil {
		slog.WarnContext(ctx, "message nack failed", "id", d.ID(), "err", err)
	}
}
