package lighthouse_test

import (
	"carbonaudit/pkg/lighthouse"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseReport(t *testing.T) {
	raw, err := os.ReadFile("testdata/report.json")
	require.NoError(t, err)

	lh, err := lighthouse.ParseReport(raw)
	require.NoError(t, err)

	require.InDelta(t, 0.87, lh.Performance, 1e-9)
	require.InDelta(t, 0.92, lh.Accessibility, 1e-9)
	require.InDelta(t, 1.0, lh.BestPractices, 1e-9)
	require.InDelta(t, 0.0, lh.SEO, 0, "null score defaults to 0")

	require.NotNil(t, lh.FirstContentfulPaint)
	require.InDelta(t, 1.23, *lh.FirstContentfulPaint, 1e-9)
	require.InDelta(t, 2.35, *lh.SpeedIndex, 1e-9)
	require.InDelta(t, 3.46, *lh.LargestContentfulPaint, 1e-9)
	require.InDelta(t, 4.01, *lh.TimeToInteractive, 1e-9)
	require.EqualValues(t, 153, *lh.TotalBlockingTime)
	require.InDelta(t, 0.0421, lh.CumulativeLayoutShift, 1e-12)
	require.EqualValues(t, 987654, lh.TotalByteWeight)
	require.Equal(t, 3, lh.RequestCount)
}

func TestParseReport_MissingFields(t *testing.T) {
	lh, err := lighthouse.ParseReport([]byte(`{"categories": {"performance": {}}, "audits": {"network-requests": {"details": null}}}`))
	require.NoError(t, err)
	require.Zero(t, lh.Performance)
	require.Nil(t, lh.FirstContentfulPaint)
	require.Nil(t, lh.SpeedIndex)
	require.Nil(t, lh.LargestContentfulPaint)
	require.Nil(t, lh.TimeToInteractive)
	require.Nil(t, lh.TotalBlockingTime)
	require.Zero(t, lh.CumulativeLayoutShift)
	require.Zero(t, lh.RequestCount)
}

func TestParseReport_ScoresClamped(t *testing.T) {
	lh, err := lighthouse.ParseReport([]byte(`{"categories": {"performance": {"score": 1.7}, "seo": {"score": -0.1}}}`))
	require.NoError(t, err)
	require.InDelta(t, 1.0, lh.Performance, 0)
	require.InDelta(t, 0.0, lh.SEO, 0)
}

func TestParseReport_RuntimeError(t *testing.T) {
	_, err := lighthouse.ParseReport([]byte(`{
		"runtimeError": {"code": "ERRORED_DOCUMENT_REQUEST", "message": "Lighthouse was unable to reliably load the page (Status code: 500)"},
		"categories": {"performance": {"score": null}}
	}`))
	require.ErrorIs(t, err, lighthouse.ErrRuntime)
	require.Contains(t, err.Error(), "unable to reliably load")
}

func TestParseReport_Malformed(t *testing.T) {
	_, err := lighthouse.ParseReport([]byte(`{"categories": `))
	require.Error(t, err)

	_, err = lighthouse.ParseReport([]byte(`[]`))
	require.Error(t, err)
}
