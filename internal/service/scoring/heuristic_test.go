package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"MarketPulse/internal/domain/models"
)

func TestConfidenceNeutralInputs(t *testing.T) {
	got := Confidence(models.IndicatorSet{RSI: 50, Pattern: models.PatternUnknown})
	assert.Equal(t, 0.5, got)
}

func TestConfidenceAdjustments(t *testing.T) {
	tests := []struct {
		name string
		ind  models.IndicatorSet
		want float64
	}{
		{"oversold rsi", models.IndicatorSet{RSI: 25}, 0.65},
		{"overbought rsi", models.IndicatorSet{RSI: 80}, 0.35},
		{"positive macd", models.IndicatorSet{RSI: 50, MACDHistogram: 0.5}, 0.6},
		{"negative macd", models.IndicatorSet{RSI: 50, MACDHistogram: -0.5}, 0.4},
		{"volume surge", models.IndicatorSet{RSI: 50, VolumeRatio: 2}, 0.6},
		{"bullish pattern", models.IndicatorSet{RSI: 50, Pattern: models.PatternGoldenCross}, 0.65},
		{"bearish pattern", models.IndicatorSet{RSI: 50, Pattern: models.PatternDeathCross}, 0.35},
		{"options skew", models.IndicatorSet{RSI: 50, OptionsSignal: 1}, 0.6},
		{"extreme bollinger", models.IndicatorSet{RSI: 50, BollingerPosition: -0.9}, 0.6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Confidence(tc.ind), 1e-9)
		})
	}
}

func TestConfidenceClamped(t *testing.T) {
	everythingBullish := models.IndicatorSet{
		RSI:               25,
		MACDHistogram:     1,
		VolumeRatio:       3,
		Pattern:           models.PatternGoldenCross,
		OptionsSignal:     1,
		BollingerPosition: 0.95,
	}
	assert.LessOrEqual(t, Confidence(everythingBullish), 1.0)

	everythingBearish := models.IndicatorSet{
		RSI:           85,
		MACDHistogram: -1,
		Pattern:       models.PatternDeathCross,
		OptionsSignal: -1,
	}
	assert.GreaterOrEqual(t, Confidence(everythingBearish), 0.0)
}
