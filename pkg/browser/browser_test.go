package browser_test

import (
	"carbonaudit/pkg/browser"
	"carbonaudit/pkg/serrors"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	closed atomic.Int32
	ctx    context.Context
}

func (s *fakeSession) Port() int                { return 9222 }
func (s *fakeSession) Context() context.Context { return s.ctx }
func (s *fakeSession) Close() error {
	s.closed.Add(1)

	return nil
}

type fakeLauncher struct {
	session *fakeSession
	err     error
}

func (l *fakeLauncher) Launch(ctx context.Context) (browser.Session, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.session = &fakeSession{ctx: ctx}

	return l.session, nil
}

func TestUse_ReleasesOnSuccess(t *testing.T) {
	l := &fakeLauncher{}

	port, err := browser.Use(context.Background(), l, time.Second, func(_ context.Context, s browser.Session) (int, error) {
		return s.Port(), nil
	})
	require.NoError(t, err)
	require.Equal(t, 9222, port)
	require.EqualValues(t, 1, l.session.closed.Load())
}

func TestUse_ReleasesOnError(t *testing.T) {
	l := &fakeLauncher{}
	boom := errors.New("audit crashed")

	_, err := browser.Use(context.Background(), l, time.Second, func(context.Context, browser.Session) (struct{}, error) {
		return struct{}{}, boom
	})
	require.ErrorIs(t, err, boom)
	require.EqualValues(t, 1, l.session.closed.Load())
}

func TestUse_ReleasesOnPanic(t *testing.T) {
	l := &fakeLauncher{}

	_, err := browser.Use(context.Background(), l, time.Second, func(context.Context, browser.Session) (struct{}, error) {
		panic("mid-run failure")
	})
	require.ErrorIs(t, err, browser.ErrPanicked)
	require.Contains(t, err.Error(), "mid-run failure")
	require.EqualValues(t, 1, l.session.closed.Load())
}

func TestUse_ForceKillsOnTimeout(t *testing.T) {
	l := &fakeLauncher{}
	unblock := make(chan struct{})
	defer close(unblock)

	start := time.Now()
	_, err := browser.Use(context.Background(), l, 20*time.Millisecond, func(context.Context, browser.Session) (struct{}, error) {
		// ignores its context on purpose
		<-unblock

		return struct{}{}, nil
	})
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrTimeout)
	require.Less(t, time.Since(start), time.Second)
	require.EqualValues(t, 1, l.session.closed.Load())
}

func TestUse_LaunchFailureDoesNotRelease(t *testing.T) {
	l := &fakeLauncher{err: errors.New("no chrome")}
	called := false

	_, err := browser.Use(context.Background(), l, time.Second, func(context.Context, browser.Session) (struct{}, error) {
		called = true

		return struct{}{}, nil
	})
	require.Error(t, err)
	require.False(t, called)
	require.Nil(t, l.session)
}

func TestGuard_ReleaseOnce(t *testing.T) {
	s := &fakeSession{}
	g := browser.NewGuard(s)
	g.Release(context.Background())
	g.Release(context.Background())
	require.EqualValues(t, 1, s.closed.Load())
	require.Same(t, s, g.Session())
}
