package browser

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/chromedp/chromedp"
)

// ChromeOptions configures a ChromeLauncher.
type ChromeOptions struct {
	// ExecPath overrides the Chrome binary lookup.
	ExecPath string
}

// ChromeLauncher starts a fresh headless Chrome for every Launch call.
// Sessions are never shared or pooled.
type ChromeLauncher struct {
	opts ChromeOptions
}

var _ Launcher = (*ChromeLauncher)(nil)

// NewChromeLauncher returns a ChromeLauncher.
func NewChromeLauncher(opts ChromeOptions) *ChromeLauncher {
	return &ChromeLauncher{opts: opts}
}

// Launch starts Chrome headless with the sandbox and GPU disabled, listening
// for DevTools on a free local port. The process is also killed when ctx ends.
func (l *ChromeLauncher) Launch(ctx context.Context) (Session, error) {
	port, err := freePort()
	if err != nil {
		return nil, fmt.Errorf("could not pick debugging port: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("remote-debugging-port", strconv.Itoa(port)),
	)
	if l.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(l.opts.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// the first Run starts the process
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()

		return nil, fmt.Errorf("could not start chrome: %w", err)
	}

	return &chromeSession{
		port:          port,
		ctx:           browserCtx,
		cancelBrowser: cancelBrowser,
		cancelAlloc:   cancelAlloc,
	}, nil
}

type chromeSession struct {
	port          int
	ctx           context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
}

func (s *chromeSession) Port() int                { return s.port }
func (s *chromeSession) Context() context.Context { return s.ctx }

// Close asks the browser to exit and then waits for the process to be reaped.
func (s *chromeSession) Close() error {
	err := chromedp.Cancel(s.ctx)
	s.cancelBrowser()
	s.cancelAlloc()
	if err != nil && s.ctx.Err() == nil {
		return fmt.Errorf("could not close chrome: %w", err)
	}

	return nil
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err //nolint: wrapcheck
	}
	defer func() {
		_ = l.Close()
	}()

	return l.Addr().(*net.TCPAddr).Port, nil
}
