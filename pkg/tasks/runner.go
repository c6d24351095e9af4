// Package tasks runs fire-and-forget work outside the request that scheduled it.
package tasks

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

var ErrShuttingDown = errors.New("tasks: runner is shutting down")

// Func is a unit of background work. The context is cancelled when the
// runner is shut down and the grace period has elapsed.
type Func func(ctx context.Context) error

// Runner tracks in-flight background tasks so the server can drain them on
// shutdown. Task failures are logged, never retried.
type Runner struct {
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewRunner(logger *zap.Logger) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{logger: logger, ctx: ctx, cancel: cancel}
}

// Go schedules fn. The task does not inherit the caller's context, so it
// keeps running after the HTTP response has been sent.
func (r *Runner) Go(name string, fn Func) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		r.logger.Warn("task dropped", zap.String("task", name), zap.Error(ErrShuttingDown))
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("task panicked", zap.String("task", name), zap.Any("panic", rec))
			}
		}()
		if err := fn(r.ctx); err != nil {
			r.logger.Error("task failed", zap.String("task", name), zap.Error(err))
			return
		}
		r.logger.Debug("task finished", zap.String("task", name))
	}()
}

// Shutdown stops accepting tasks and waits for running ones. When ctx
// expires first, running tasks are cancelled and ctx.Err() is returned.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.cancel()
		return nil
	case <-ctx.Done():
		r.cancel()
		<-done
		return ctx.Err()
	}
}
