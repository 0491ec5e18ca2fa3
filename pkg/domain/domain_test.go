package domain_test

import (
	"carbonaudit/pkg/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestPerformanceGrade(t *testing.T) {
	cases := []struct {
		in   *float64
		want domain.Grade
	}{
		{ptr(0.95), domain.GradeA},
		{ptr(0.90), domain.GradeA},
		{ptr(0.80), domain.GradeB},
		{ptr(0.60), domain.GradeC},
		{ptr(0.30), domain.GradeD},
		{ptr(0.10), domain.GradeF},
		{nil, domain.GradeNA},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, domain.PerformanceGrade(tc.in))
	}
}

func TestCarbonGrade(t *testing.T) {
	cases := []struct {
		in   *float64
		want domain.Grade
	}{
		{ptr(0.3), domain.GradeA},
		{ptr(0.8), domain.GradeB},
		{ptr(1.5), domain.GradeC},
		{ptr(2.5), domain.GradeD},
		{ptr(4.0), domain.GradeF},
		{nil, domain.GradeNA},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, domain.CarbonGrade(tc.in))
	}
}

func TestAuditRecord_Grades(t *testing.T) {
	rec := domain.AuditRecord{}
	require.Equal(t, domain.Grades{Performance: domain.GradeNA, Carbon: domain.GradeNA}, rec.Grades())

	rec.Lighthouse = &domain.Lighthouse{Performance: 0.92}
	rec.Carbon = &domain.Carbon{CO2PerPageview: 1.2}
	require.Equal(t, domain.Grades{Performance: domain.GradeA, Carbon: domain.GradeC}, rec.Grades())
}

func TestAuditRecord_Complete(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := domain.AuditRecord{Status: domain.AuditStatusPending, CreatedAt: created}

	err := rec.Complete(
		&domain.Carbon{CO2PerPageview: 0.4, CleanerThan: 1.7},
		&domain.Lighthouse{Performance: 1.3, Accessibility: -0.2, BestPractices: 0.5, SEO: 0.9},
		&domain.Reports{HTMLPath: "/reports/a.html"},
		created.Add(1500*time.Millisecond),
	)
	require.NoError(t, err)
	require.Equal(t, domain.AuditStatusCompleted, rec.Status)
	require.EqualValues(t, 1500, rec.Duration)
	require.InDelta(t, 1.0, rec.Carbon.CleanerThan, 1e-9)
	require.InDelta(t, 1.0, rec.Lighthouse.Performance, 1e-9)
	require.InDelta(t, 0.0, rec.Lighthouse.Accessibility, 1e-9)

	// terminal records cannot be reopened
	require.ErrorIs(t, rec.Fail("late", created), domain.ErrTerminal)
	require.ErrorIs(t, rec.Complete(rec.Carbon, rec.Lighthouse, nil, created), domain.ErrTerminal)
}

func TestAuditRecord_CompleteRequiresBothResults(t *testing.T) {
	rec := domain.AuditRecord{Status: domain.AuditStatusPending}
	require.ErrorIs(t, rec.Complete(&domain.Carbon{}, nil, nil, time.Now()), domain.ErrIncomplete)
	require.Equal(t, domain.AuditStatusPending, rec.Status)
}

func TestAuditRecord_Fail(t *testing.T) {
	created := time.Now()
	rec := domain.AuditRecord{Status: domain.AuditStatusPending, CreatedAt: created}

	require.ErrorIs(t, rec.Fail("", created), domain.ErrEmptyError)
	require.NoError(t, rec.Fail("boom", created.Add(time.Second)))
	require.Equal(t, domain.AuditStatusFailed, rec.Status)
	require.Equal(t, "boom", rec.Error)
	require.EqualValues(t, 1000, rec.Duration)
}

func TestClamp01(t *testing.T) {
	require.InDelta(t, 0.0, domain.Clamp01(-3), 0)
	require.InDelta(t, 1.0, domain.Clamp01(42), 0)
	require.InDelta(t, 0.25, domain.Clamp01(0.25), 0)
}

func TestCompareToAverage(t *testing.T) {
	rec := &domain.AuditRecord{
		Carbon:     &domain.Carbon{CO2PerPageview: 0.5},
		Lighthouse: &domain.Lighthouse{Performance: 0.9},
	}

	t.Run("no completed records", func(t *testing.T) {
		require.Nil(t, domain.CompareToAverage(rec, domain.AuditStats{}))
	})

	t.Run("record without results", func(t *testing.T) {
		require.Nil(t, domain.CompareToAverage(&domain.AuditRecord{}, domain.AuditStats{Count: 3, AvgCO2: 1}))
	})

	t.Run("better than average", func(t *testing.T) {
		cmp := domain.CompareToAverage(rec, domain.AuditStats{Count: 4, AvgCO2: 1.0, AvgPerformance: 0.6})
		require.NotNil(t, cmp)
		require.Equal(t, domain.Better, cmp.CO2Comparison)
		require.InDelta(t, -50.0, cmp.CO2DifferencePct, 1e-9)
		require.Equal(t, domain.Better, cmp.PerformanceComparison)
		require.InDelta(t, 50.0, cmp.PerformanceDifferencePct, 1e-9)
	})

	t.Run("only record equals the mean", func(t *testing.T) {
		cmp := domain.CompareToAverage(rec, domain.AuditStats{Count: 1, AvgCO2: 0.5, AvgPerformance: 0.9})
		require.NotNil(t, cmp)
		require.Equal(t, domain.Worse, cmp.CO2Comparison)
		require.InDelta(t, 0.0, cmp.CO2DifferencePct, 0)
		require.Equal(t, domain.Worse, cmp.PerformanceComparison)
	})

	t.Run("zero mean does not produce NaN", func(t *testing.T) {
		cmp := domain.CompareToAverage(rec, domain.AuditStats{Count: 2})
		require.NotNil(t, cmp)
		require.InDelta(t, 0.0, cmp.CO2DifferencePct, 0)
		require.InDelta(t, 0.0, cmp.PerformanceDifferencePct, 0)
	})

	t.Run("rounded to two decimals", func(t *testing.T) {
		cmp := domain.CompareToAverage(rec, domain.AuditStats{Count: 3, AvgCO2: 0.3, AvgPerformance: 0.7})
		require.InDelta(t, 66.67, cmp.CO2DifferencePct, 1e-9)
		require.InDelta(t, 28.57, cmp.PerformanceDifferencePct, 1e-9)
	})
}

func TestParseAuditURL(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"https://example.com", true},
		{"HTTP://Example.COM/path?q=1", true},
		{"ftp://x", false},
		{"javascript:alert(1)", false},
		{"example.com", false},
		{"", false},
		{"   ", false},
		{"http://", false},
		{"http://exa mple.com", false},
	}
	for _, tc := range cases {
		_, err := domain.ParseAuditURL(tc.in)
		if tc.ok {
			require.NoError(t, err, tc.in)
		} else {
			require.Error(t, err, tc.in)
		}
	}
}

func TestDomainFromURL(t *testing.T) {
	require.Equal(t, "example.com", domain.DomainFromURL("https://Example.COM:8443/a"))
	require.Equal(t, "example.com", domain.DomainFromURL("http://example.com"))
	require.Equal(t, "2001:db8::1", domain.DomainFromURL("http://[2001:db8::1]:8080/a"))
	require.Empty(t, domain.DomainFromURL("http://[::1"))
}
