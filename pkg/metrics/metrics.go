package metrics

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// AuditBuckets are histogram buckets in seconds sized for end-to-end audits,
// which routinely take tens of seconds because of the browser run.
var AuditBuckets = []float64{1, 2.5, 5, 10, 15, 20, 30, 45, 60, 90, 120, 180} //nolint: gochecknoglobals
