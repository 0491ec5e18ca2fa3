package lighthouse_test

import (
	"carbonaudit/pkg/lighthouse"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestCLIRunner_Args(t *testing.T) {
	r := lighthouse.NewCLIRunner("", lighthouse.Throttling{}, afero.NewMemMapFs())

	args := r.Args("https://example.com", 9222, "/tmp/out/report")
	require.Equal(t, []string{
		"https://example.com",
		"--port=9222",
		"--output=json",
		"--output=html",
		"--output-path=/tmp/out/report",
		"--only-categories=performance,accessibility,best-practices,seo",
		"--throttling-method=simulate",
		"--throttling.rttMs=40",
		"--throttling.throughputKbps=10240",
		"--throttling.cpuSlowdownMultiplier=1",
		"--quiet",
	}, args)
}

// fakeLighthouse writes a shell script that mimics the lighthouse CLI output layout.
func fakeLighthouse(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake requires a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "lighthouse")
	script := "#!/bin/sh\nfor a in \"$@\"; do case \"$a\" in --output-path=*) out=\"${a#--output-path=}\";; esac; done\n" + body
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755)) //nolint: gosec

	return path
}

func TestCLIRunner_Run(t *testing.T) {
	bin := fakeLighthouse(t, `printf '{"categories":{}}' > "$out.report.json"
printf '<html></html>' > "$out.report.html"
`)
	r := lighthouse.NewCLIRunner(bin, lighthouse.DefaultThrottling, afero.NewOsFs())

	out, err := r.Run(context.Background(), "https://example.com", 9222)
	require.NoError(t, err)
	require.JSONEq(t, `{"categories":{}}`, string(out.JSON))
	require.Equal(t, "<html></html>", string(out.HTML))
}

func TestCLIRunner_RunFailure(t *testing.T) {
	bin := fakeLighthouse(t, "echo 'Runtime error encountered: no chrome' >&2\nexit 1\n")
	r := lighthouse.NewCLIRunner(bin, lighthouse.DefaultThrottling, nil)

	_, err := r.Run(context.Background(), "https://example.com", 9222)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no chrome")
}

func TestCLIRunner_RunKilledOnTimeout(t *testing.T) {
	bin := fakeLighthouse(t, "exec sleep 5\n")
	r := lighthouse.NewCLIRunner(bin, lighthouse.DefaultThrottling, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := r.Run(ctx, "https://example.com", 9222)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 4*time.Second)
}
