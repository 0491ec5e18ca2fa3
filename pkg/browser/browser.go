// Package browser provides scoped headless-browser sessions. A session is
// owned by exactly one caller and is released exactly once, whether the work
// done with it succeeds, fails, panics or runs out of time.
package browser

import (
	"carbonaudit/pkg/logger"
	"carbonaudit/pkg/serrors"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrPanicked is returned by Use when the callback panicked.
var ErrPanicked = errors.New("browser session callback panicked")

// Session is a running browser process.
type Session interface {
	// Port is the remote debugging port the browser listens on.
	Port() int
	// Context returns a chromedp-compatible context bound to the browser.
	Context() context.Context
	// Close terminates the browser process.
	Close() error
}

// Launcher starts browser processes.
type Launcher interface {
	Launch(ctx context.Context) (Session, error)
}

// Guard owns a Session and releases it at most once.
type Guard struct {
	session Session
	once    sync.Once
}

// NewGuard wraps session.
func NewGuard(session Session) *Guard {
	return &Guard{session: session}
}

// Session returns the guarded session.
func (g *Guard) Session() Session { return g.session }

// Release closes the session. Only the first call has an effect.
func (g *Guard) Release(ctx context.Context) {
	g.once.Do(func() {
		if err := g.session.Close(); err != nil {
			logger.Get(ctx).Warn("could not close browser session", zap.Error(err))
		}
	})
}

// Use launches a browser, runs fn with it and releases the browser before
// returning. When timeout is positive and fn does not finish in time the
// browser is killed and a serrors.ErrTimeout error is returned without
// waiting for fn.
func Use[T any](ctx context.Context,
	launcher Launcher,
	timeout time.Duration,
	fn func(ctx context.Context, s Session) (T, error)) (T, error) {
	var zero T

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	session, err := launcher.Launch(ctx)
	if err != nil {
		return zero, fmt.Errorf("could not launch browser: %w", err)
	}
	guard := NewGuard(session)
	defer guard.Release(ctx)

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrPanicked, r)}
			}
		}()
		v, err := fn(ctx, session)
		done <- result{v: v, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil && ctx.Err() != nil {
			return zero, interrupted(ctx, timeout)
		}

		return r.v, r.err
	case <-ctx.Done():
		guard.Release(ctx)

		return zero, interrupted(ctx, timeout)
	}
}

func interrupted(ctx context.Context, timeout time.Duration) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return serrors.Wrap(serrors.ErrTimeout, ctx.Err(), "browser session exceeded %s", timeout)
	}

	return fmt.Errorf("browser session aborted: %w", ctx.Err())
}
