// Package goroutine provides a bounded background task runner with panic
// recovery, used for fire-and-forget work like event publishing.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/smashstrix/smashstrix/internal/pkg/stacktrace"
	"go.uber.org/atomic"
)

// DefaultPerCPU is the per-CPU slot count used when NewManager receives a
// non-positive limit.
const DefaultPerCPU = 100

// Manager runs tasks on goroutines up to a concurrency limit, recovers
// panics, and collects task errors until Wait.
type Manager struct {
	mu       sync.Mutex
	errs     []error
	wg       sync.WaitGroup
	sema     chan struct{}
	inflight atomic.Int64
	closed   atomic.Bool
}

// NewManager creates a Manager allowing at most limit concurrent tasks.
func NewManager(limit int) *Manager {
	if limit < 1 {
		limit = runtime.NumCPU() * DefaultPerCPU
	}

	return &Manager{sema: make(chan struct{}, limit)}
}

// Go schedules f when a slot is free. At capacity or after Wait the task is
// dropped with a warning instead of blocking the caller.
func (m *Manager) Go(ctx context.Context, f func(ctx context.Context) error) {
	if m == nil {
		return
	}

	if m.closed.Load() {
		slog.WarnContext(ctx, "goroutine manager closed, task dropped")
		return
	}

	select {
	case m.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "goroutine limit reached, task dropped")
		return
	}

	m.inflight.Inc()
	m.wg.Add(1)
	go func() {
		defer func() {
			m.inflight.Dec()
			<-m.sema
			m.wg.Done()

			if rvr := recover(); rvr != nil {
				stack := debug.Stack()
				if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
					slog.ErrorContext(ctx, "panic in background task", "recovered", rvr, "stack", paths)
				} else {
					slog.ErrorContext(ctx, "panic in background task", "recovered", rvr, "stack", string(stack))
				}
			}
		}()

		select {
		case <-ctx.Done():
			slog.WarnContext(ctx, "background task canceled", "because", ctx.Err())
		default:
			if err := f(ctx); err != nil {
				m.mu.Lock()
				m.errs = append(m.errs, err)
				m.mu.Unlock()
			}
		}
	}()
}

// Inflight returns the number of currently running tasks.
func (m *Manager) Inflight() int64 {
	if m == nil {
		return 0
	}
	return m.inflight.Load()
}

// Wait closes the manager, blocks until running tasks finish, and returns
// the joined task errors.
func (m *Manager) Wait() error {
	if m == nil {
		return nil
	}

	m.closed.Store(true)
	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	return errors.Join(m.errs...)
}
