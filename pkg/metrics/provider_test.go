package metrics_test

import (
	"carbonaudit/pkg/metrics"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
)

func TestNewMeterProvider_ExportsToRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	mp, err := metrics.NewMeterProvider(reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	hist, err := mp.Meter("test").Float64Histogram("audit_duration_seconds",
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.AuditBuckets...))
	require.NoError(t, err)
	hist.Record(context.Background(), 12)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "audit_duration_seconds" {
			found = true
			require.GreaterOrEqual(t, len(f.GetMetric()[0].GetHistogram().GetBucket()), len(metrics.AuditBuckets))
		}
	}
	require.True(t, found)
}
