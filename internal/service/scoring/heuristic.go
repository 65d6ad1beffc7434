package scoring

import (
	"math"

	"MarketPulse/internal/domain/models"
	domsvc "MarketPulse/internal/domain/service"
)

// Heuristic is the deterministic confidence path: fixed additive
// adjustments on top of a 0.5 base, clamped to [0, 1]. It shares no
// state with Model and the two are not required to agree.
type Heuristic struct{}

// NewHeuristic returns the stateless heuristic scorer.
func NewHeuristic() Heuristic { return Heuristic{} }

// Confidence scores an indicator snapshot.
func (Heuristic) Confidence(ind models.IndicatorSet) float64 {
	return Confidence(ind)
}

// Confidence implements the heuristic scoring table.
func Confidence(ind models.IndicatorSet) float64 {
	score := 0.5

	switch {
	case ind.RSI < 30:
		score += 0.15 // oversold, mean-reversion long
	case ind.RSI > 70:
		score -= 0.15 // overbought
	}

	switch {
	case ind.MACDHistogram > 0:
		score += 0.10
	case ind.MACDHistogram < 0:
		score -= 0.10
	}

	if ind.VolumeRatio > 1.5 {
		score += 0.10
	}

	switch {
	case ind.Pattern.Bullish():
		score += 0.15
	case ind.Pattern.Bearish():
		score -= 0.15
	}

	score += ind.OptionsSignal * 0.10

	if math.Abs(ind.BollingerPosition) > 0.8 {
		score += 0.10
	}

	return clamp01(score)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

var _ domsvc.ConfidenceScorer = Heuristic{}
