package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"MarketPulse/internal/domain/models"
)

func risingSeries(n int, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + step*float64(i)
	}
	return out
}

func fallingSeries(n int, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 300 - step*float64(i)
	}
	return out
}

func TestClassifyPattern(t *testing.T) {
	flat := make([]float64, 30)
	for i := range flat {
		flat[i] = 100
	}

	tests := []struct {
		name   string
		closes []float64
		vol    float64
		want   models.Pattern
	}{
		{"short history", []float64{100, 101, 102}, 0, models.PatternUnknown},
		{"flat is consolidation", flat, 0.1, models.PatternConsolidation},
		{"uptrend low vol short history", risingSeries(20, 1), 0.1, models.PatternBullFlag},
		{"uptrend high vol short history", risingSeries(20, 1), 0.5, models.PatternAscendingTriangle},
		{"uptrend long history is golden cross", risingSeries(80, 1), 0.1, models.PatternGoldenCross},
		{"downtrend low vol short history", fallingSeries(20, 1), 0.1, models.PatternBearFlag},
		{"downtrend high vol short history", fallingSeries(20, 1), 0.5, models.PatternDescendingTriangle},
		{"downtrend long history is death cross", fallingSeries(80, 1), 0.1, models.PatternDeathCross},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyPattern(tc.closes, tc.vol))
		})
	}
}

func TestPatternRoundTrip(t *testing.T) {
	for p := models.PatternUnknown; p <= models.PatternConsolidation; p++ {
		assert.Equal(t, p, models.ParsePattern(p.String()))
	}
	assert.Equal(t, models.PatternUnknown, models.ParsePattern("head_and_shoulders"))
}
