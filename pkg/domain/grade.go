package domain

// Grade is a letter grade derived from audit metrics.
type Grade string

const (
	GradeA  Grade = "A"
	GradeB  Grade = "B"
	GradeC  Grade = "C"
	GradeD  Grade = "D"
	GradeF  Grade = "F"
	GradeNA Grade = "N/A"
)

// Grades groups the derived grades of one record.
type Grades struct {
	Performance Grade `json:"performance"`
	Carbon      Grade `json:"carbon"`
}

// PerformanceGrade maps a performance category score in [0,1] to a grade.
// A nil score grades as N/A.
func PerformanceGrade(score *float64) Grade {
	if score == nil {
		return GradeNA
	}

	switch s := *score; {
	case s >= 0.90:
		return GradeA
	case s >= 0.75:
		return GradeB
	case s >= 0.50:
		return GradeC
	case s >= 0.25:
		return GradeD
	default:
		return GradeF
	}
}

// CarbonGrade maps grams of CO2 per page view to a grade. A nil value grades as N/A.
func CarbonGrade(co2 *float64) Grade {
	if co2 == nil {
		return GradeNA
	}

	switch c := *co2; {
	case c < 0.5:
		return GradeA
	case c < 1.0:
		return GradeB
	case c < 2.0:
		return GradeC
	case c < 3.0:
		return GradeD
	default:
		return GradeF
	}
}

// Grades computes the derived grades of the record at query time.
func (a *AuditRecord) Grades() Grades {
	var perf, co2 *float64
	if a.Lighthouse != nil {
		perf = &a.Lighthouse.Performance
	}
	if a.Carbon != nil {
		co2 = &a.Carbon.CO2PerPageview
	}

	return Grades{
		Performance: PerformanceGrade(perf),
		Carbon:      CarbonGrade(co2),
	}
}
