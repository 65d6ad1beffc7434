package indicators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/domain/models"
)

func TestRSIShortSeriesIsNeutral(t *testing.T) {
	for n := 0; n < 15; n++ {
		prices := make([]float64, n)
		for i := range prices {
			prices[i] = 100 + float64(i)
		}
		assert.Equal(t, 50.0, RSI(prices, 14), "len=%d", n)
	}
}

func TestRSINoLossesIsHundred(t *testing.T) {
	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	assert.Equal(t, 100.0, RSI(prices, 14))
}

func TestRSIStaysInRange(t *testing.T) {
	prices := []float64{
		100, 102, 101, 105, 103, 108, 107, 110, 106, 109,
		111, 108, 112, 115, 113, 118, 116, 120,
	}
	rsi := RSI(prices, 14)
	assert.GreaterOrEqual(t, rsi, 0.0)
	assert.LessOrEqual(t, rsi, 100.0)
}

func TestRSIAllLossesIsZero(t *testing.T) {
	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 200 - float64(i)
	}
	assert.Equal(t, 0.0, RSI(prices, 14))
}

func TestMACDHistogramShortSeriesIsZero(t *testing.T) {
	prices := make([]float64, 25)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	assert.Equal(t, 0.0, MACDHistogram(prices))
}

func TestMACDHistogramRisingSeriesIsPositive(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100 * (1 + 0.01*float64(i))
	}
	assert.Greater(t, MACDHistogram(prices), 0.0)
}

func TestMACDHistogramFallingSeriesIsNegative(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 200 - float64(i)
	}
	assert.Less(t, MACDHistogram(prices), 0.0)
}

func TestBollingerPositionClamped(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 100 + float64(i%5)
	}

	assert.Equal(t, 1.0, BollingerPosition(prices, 500))
	assert.Equal(t, -1.0, BollingerPosition(prices, 1))

	pos := BollingerPosition(prices, 102)
	assert.GreaterOrEqual(t, pos, -1.0)
	assert.LessOrEqual(t, pos, 1.0)
}

func TestBollingerPositionShortOrFlatIsZero(t *testing.T) {
	short := []float64{100, 101, 102}
	assert.Equal(t, 0.0, BollingerPosition(short, 101))

	flat := make([]float64, 25)
	for i := range flat {
		flat[i] = 100
	}
	assert.Equal(t, 0.0, BollingerPosition(flat, 150))
}

func TestVolatility(t *testing.T) {
	assert.Equal(t, 0.0, Volatility(nil))
	assert.Equal(t, 0.0, Volatility([]float64{100}))
	assert.Equal(t, 0.0, Volatility([]float64{100, 100, 100}))

	vol := Volatility([]float64{100, 110, 99})
	assert.InDelta(t, 0.1*15.8745, vol, 1e-3) // 0.1 * sqrt(252)
}

func TestOptionsSignal(t *testing.T) {
	assert.Equal(t, 0.0, OptionsSignal(nil))

	bull := []models.OptionsFlowEntry{
		{Symbol: "AAPL", Contract: models.ContractCall, Premium: 500000, Sentiment: models.SentimentBullish},
		{Symbol: "AAPL", Contract: models.ContractCall, Premium: 250000, Sentiment: models.SentimentBullish},
	}
	assert.Equal(t, 1.0, OptionsSignal(bull))

	mixed := append(bull, models.OptionsFlowEntry{
		Symbol: "AAPL", Contract: models.ContractPut, Premium: 250000, Sentiment: models.SentimentBearish,
	})
	assert.InDelta(t, 0.5, OptionsSignal(mixed), 1e-9)

	neutralHeavy := []models.OptionsFlowEntry{
		{Premium: 100, Sentiment: models.SentimentBullish},
		{Premium: 300, Sentiment: models.SentimentNeutral},
	}
	assert.InDelta(t, 0.25, OptionsSignal(neutralHeavy), 1e-9)
}

func TestComputeWithShortHistoryIsNeutral(t *testing.T) {
	quote := &models.Quote{
		Symbol:        "SPY",
		Price:         100,
		Open:          95,
		Volume:        2_000_000,
		AverageVolume: 1_000_000,
		Timestamp:     time.Now(),
	}
	closes := []float64{100, 100, 100, 100, 100}

	ind := Compute(quote, closes, nil)

	require.Equal(t, "SPY", ind.Symbol)
	assert.Equal(t, 50.0, ind.RSI)
	assert.Equal(t, 0.0, ind.MACDHistogram)
	assert.Equal(t, 0.0, ind.BollingerPosition)
	assert.Equal(t, 2.0, ind.VolumeRatio)
	assert.Equal(t, models.PatternUnknown, ind.Pattern)
}
