package indicators

import "MarketPulse/internal/domain/models"

const (
	trendWindow    = 10
	trendThreshold = 0.02
	flagThreshold  = 0.01
	flagVolCeiling = 0.2
)

// ClassifyPattern labels the recent price structure from the trend over
// the last 10 closes. Fewer than 10 samples yields PatternUnknown.
func ClassifyPattern(closes []float64, volatility float64) models.Pattern {
	if len(closes) < trendWindow {
		return models.PatternUnknown
	}
	recent := closes[len(closes)-trendWindow:]
	if recent[0] == 0 {
		return models.PatternUnknown
	}
	trend := (recent[len(recent)-1] - recent[0]) / recent[0]

	switch {
	case trend > trendThreshold:
		if len(closes) >= 50 && sma(closes, 50) > sma(closes, 200) {
			return models.PatternGoldenCross
		}
		if trend > flagThreshold && volatility < flagVolCeiling {
			return models.PatternBullFlag
		}
		return models.PatternAscendingTriangle
	case trend < -trendThreshold:
		if len(closes) >= 50 && sma(closes, 50) < sma(closes, 200) {
			return models.PatternDeathCross
		}
		if trend < -flagThreshold && volatility < flagVolCeiling {
			return models.PatternBearFlag
		}
		return models.PatternDescendingTriangle
	}
	return models.PatternConsolidation
}

// sma averages the last n closes, or the whole series when shorter.
func sma(closes []float64, n int) float64 {
	if n > len(closes) {
		n = len(closes)
	}
	if n == 0 {
		return 0
	}
	return meanOf(closes[len(closes)-n:])
}
