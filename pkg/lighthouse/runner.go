package lighthouse

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/spf13/afero"
)

// Throttling fixes the network and CPU conditions of a run so results are
// comparable across audits.
type Throttling struct {
	RTTMs                 int
	ThroughputKbps        int
	CPUSlowdownMultiplier float64
}

// DefaultThrottling is used when a CLIRunner is built with a zero Throttling.
var DefaultThrottling = Throttling{RTTMs: 40, ThroughputKbps: 10240, CPUSlowdownMultiplier: 1} //nolint: gochecknoglobals

// Categories are the audit categories every run collects.
var Categories = []string{"performance", "accessibility", "best-practices", "seo"} //nolint: gochecknoglobals

// Output is the pair of artifacts produced by one Lighthouse run.
type Output struct {
	JSON []byte
	HTML []byte
}

// Runner runs Lighthouse against a browser listening on port.
//
//go:generate mockgen -package mocklighthouse -source=runner.go -destination=mock/mockrunner.go *
type Runner interface {
	Run(ctx context.Context, target string, port int) (Output, error)
}

// CLIRunner runs the lighthouse command line tool.
type CLIRunner struct {
	binary     string
	throttling Throttling
	fs         afero.Fs
}

var _ Runner = (*CLIRunner)(nil)

// NewCLIRunner returns a CLIRunner. An empty binary selects "lighthouse" from PATH.
func NewCLIRunner(binary string, throttling Throttling, fs afero.Fs) *CLIRunner {
	if binary == "" {
		binary = "lighthouse"
	}
	if throttling == (Throttling{}) {
		throttling = DefaultThrottling
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}

	return &CLIRunner{binary: binary, throttling: throttling, fs: fs}
}

// Args returns the command line used for target.
func (r *CLIRunner) Args(target string, port int, outputPath string) []string {
	return []string{
		target,
		"--port=" + strconv.Itoa(port),
		"--output=json",
		"--output=html",
		"--output-path=" + outputPath,
		"--only-categories=" + strings.Join(Categories, ","),
		"--throttling-method=simulate",
		"--throttling.rttMs=" + strconv.Itoa(r.throttling.RTTMs),
		"--throttling.throughputKbps=" + strconv.Itoa(r.throttling.ThroughputKbps),
		"--throttling.cpuSlowdownMultiplier=" + strconv.FormatFloat(r.throttling.CPUSlowdownMultiplier, 'f', -1, 64),
		"--quiet",
	}
}

// Run implements Runner. The process is killed when ctx ends.
func (r *CLIRunner) Run(ctx context.Context, target string, port int) (Output, error) {
	dir, err := afero.TempDir(r.fs, "", "lighthouse-")
	if err != nil {
		return Output{}, errors.Wrap(err, "create output dir")
	}
	defer func() {
		_ = r.fs.RemoveAll(dir)
	}()

	base := filepath.Join(dir, "report")
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, r.Args(target, port, base)...) //nolint: gosec
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Output{}, errors.Wrap(ctxErr, "lighthouse interrupted")
		}

		return Output{}, errors.Wrapf(err, "run lighthouse: %s", lastLine(stderr.String()))
	}

	jsonReport, err := afero.ReadFile(r.fs, base+".report.json")
	if err != nil {
		return Output{}, errors.Wrap(err, "read json report")
	}
	htmlReport, err := afero.ReadFile(r.fs, base+".report.html")
	if err != nil {
		return Output{}, errors.Wrap(err, "read html report")
	}

	return Output{JSON: jsonReport, HTML: htmlReport}, nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}

	return s
}
