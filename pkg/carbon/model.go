package carbon

import "carbonaudit/pkg/domain"

// Sustainable Web Design (v3) per-byte model constants.
const (
	kWhPerGB = 0.81

	dataCentreShare = 0.15
	networkShare    = 0.14
	deviceShare     = 0.52
	productionShare = 0.19

	// gridIntensity is the global average grid carbon intensity in g/kWh.
	gridIntensity = 442.0
	// renewableIntensity applies to the data-centre segment of green hosts.
	renewableIntensity = 50.0

	bytesPerGB = 1_000_000_000

	// AveragePageGrams is the emissions of an average page view, used as the
	// reference point for CleanerThan.
	AveragePageGrams = 0.8
)

// EmissionsPerByte converts a transfer size in bytes into grams of CO2e.
func EmissionsPerByte(bytes int64, green bool) float64 {
	if bytes <= 0 {
		return 0
	}

	energy := float64(bytes) / bytesPerGB * kWhPerGB

	dataCentreIntensity := gridIntensity
	if green {
		dataCentreIntensity = renewableIntensity
	}

	return energy*dataCentreShare*dataCentreIntensity +
		energy*(networkShare+deviceShare+productionShare)*gridIntensity
}

// CleanerThan returns the share of pages this page is cleaner than, from 1 for
// zero emissions to 0 at twice the average page. The result is in [0,1].
func CleanerThan(grams float64) float64 {
	return domain.Clamp01(1 - grams/(2*AveragePageGrams))
}
