package domain

import "math"

// AuditStats aggregates completed audit records.
type AuditStats struct {
	Count            int64   `json:"count"`
	AvgCO2           float64 `json:"avgCo2"`
	AvgPerformance   float64 `json:"avgPerformance"`
	AvgAccessibility float64 `json:"avgAccessibility"`
	AvgSEO           float64 `json:"avgSeo"`
	// GreenPercentage is the share of completed records with green hosting, 0-100.
	GreenPercentage float64 `json:"greenPercentage"`
}

// ComparisonVerdict says whether a record did better or worse than the mean.
type ComparisonVerdict string

const (
	Better ComparisonVerdict = "better"
	Worse  ComparisonVerdict = "worse"
)

// Comparison relates a record's own metrics to the global means.
type Comparison struct {
	CO2Comparison            ComparisonVerdict `json:"co2Comparison"`
	CO2DifferencePct         float64           `json:"co2DifferencePct"`
	PerformanceComparison    ComparisonVerdict `json:"performanceComparison"`
	PerformanceDifferencePct float64           `json:"performanceDifferencePct"`
}

// CompareToAverage compares the record's CO2 and performance against the
// given aggregate. It returns nil when there is nothing to compare against
// (no completed records) or the record lacks results. Percentage differences
// are (value - mean) / mean * 100 with sign preserved, rounded to 2 decimals.
func CompareToAverage(rec *AuditRecord, stats AuditStats) *Comparison {
	if rec == nil || rec.Carbon == nil || rec.Lighthouse == nil || stats.Count == 0 {
		return nil
	}

	co2 := rec.Carbon.CO2PerPageview
	perf := rec.Lighthouse.Performance

	cmp := &Comparison{
		CO2Comparison:            Worse,
		CO2DifferencePct:         pctDiff(co2, stats.AvgCO2),
		PerformanceComparison:    Worse,
		PerformanceDifferencePct: pctDiff(perf, stats.AvgPerformance),
	}
	if co2 < stats.AvgCO2 {
		cmp.CO2Comparison = Better
	}
	if perf > stats.AvgPerformance {
		cmp.PerformanceComparison = Better
	}

	return cmp
}

func pctDiff(value, mean float64) float64 {
	if mean == 0 {
		return 0
	}

	return Round2((value - mean) / mean * 100)
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
