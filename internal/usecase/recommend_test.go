package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/service/scoring"
)

func bullishIndicators() models.IndicatorSet {
	return models.IndicatorSet{
		Symbol:        "AAPL",
		RSI:           25,
		MACDHistogram: 0.8,
		VolumeRatio:   2.0,
		Pattern:       models.PatternGoldenCross,
		OptionsSignal: 0.6,
	}
}

func bearishIndicators() models.IndicatorSet {
	return models.IndicatorSet{
		Symbol:        "AAPL",
		RSI:           78,
		MACDHistogram: -0.8,
		Pattern:       models.PatternDeathCross,
		OptionsSignal: -0.6,
	}
}

func TestGenerateStrongBuyOnBullishSetup(t *testing.T) {
	g := NewGenerator(scoring.NewModel(0.01, 0.9))
	quote := &models.Quote{Symbol: "AAPL", Price: 100, Open: 95, Volume: 2000, AverageVolume: 1000}

	rec := g.Generate(bullishIndicators(), quote)

	require.NotNil(t, rec)
	assert.Equal(t, models.ActionStrongBuy, rec.Action)
	assert.Greater(t, rec.Confidence, 80.0)
	assert.NotEmpty(t, rec.Rationale)
	assert.Greater(t, rec.ModelScore, 0.0)
	assert.Less(t, rec.ModelScore, 1.0)
}

func TestGenerateStrongSellOnBearishSetup(t *testing.T) {
	g := NewGenerator(scoring.NewModel(0.01, 0.9))
	quote := &models.Quote{Symbol: "AAPL", Price: 100, Open: 105, Volume: 1000}

	rec := g.Generate(bearishIndicators(), quote)

	require.NotNil(t, rec)
	assert.Equal(t, models.ActionStrongSell, rec.Action)
	assert.Less(t, rec.Confidence, 20.0)
}

func TestGenerateHoldReturnsNil(t *testing.T) {
	g := NewGenerator(scoring.NewModel(0.01, 0.9))
	quote := &models.Quote{Symbol: "SPY", Price: 100, Volume: 1000}
	neutral := models.IndicatorSet{Symbol: "SPY", RSI: 50, Pattern: models.PatternUnknown}

	assert.Nil(t, g.Generate(neutral, quote))
}

func TestGenerateSkipsInvalidQuote(t *testing.T) {
	g := NewGenerator(scoring.NewModel(0.01, 0.9))
	assert.Nil(t, g.Generate(bullishIndicators(), &models.Quote{Symbol: "AAPL", Price: 0}))
}

func TestGenerateOverboughtRSIBlocksBuy(t *testing.T) {
	g := NewGenerator(scoring.NewModel(0.01, 0.9))
	quote := &models.Quote{Symbol: "AAPL", Price: 100, Volume: 1000}

	ind := bullishIndicators()
	ind.RSI = 75 // high confidence but extended

	assert.Nil(t, g.Generate(ind, quote))
}

func TestPriceLevelsBuy(t *testing.T) {
	target, stop := priceLevels(models.ActionBuy, 100, 0.1)
	assert.InDelta(t, 105, target, 1e-9)
	assert.InDelta(t, 98, stop, 1e-9)

	target, stop = priceLevels(models.ActionBuy, 100, 0.5)
	assert.InDelta(t, 108, target, 1e-9)
	assert.InDelta(t, 95, stop, 1e-9)
}

func TestPriceLevelsSell(t *testing.T) {
	target, stop := priceLevels(models.ActionSell, 100, 0.1)
	assert.InDelta(t, 95, target, 1e-9)
	assert.InDelta(t, 102, stop, 1e-9)

	target, stop = priceLevels(models.ActionStrongSell, 100, 0.5)
	assert.InDelta(t, 92, target, 1e-9)
	assert.InDelta(t, 105, stop, 1e-9)
}

func TestStrengthScoreClamped(t *testing.T) {
	quiet := &models.Quote{Price: 100, Open: 100, Volume: 100, AverageVolume: 100}
	assert.InDelta(t, 50, strengthScore(quiet), 1e-9)

	surging := &models.Quote{Price: 130, Open: 100, Volume: 500, AverageVolume: 100}
	assert.Equal(t, 100.0, strengthScore(surging))

	collapsing := &models.Quote{Price: 100, Open: 100, Volume: 10, AverageVolume: 100}
	assert.GreaterOrEqual(t, strengthScore(collapsing), 0.0)
}

func TestRiskLevelBands(t *testing.T) {
	assert.Equal(t, models.RiskLow, riskLevel(85))
	assert.Equal(t, models.RiskMedium, riskLevel(60))
	assert.Equal(t, models.RiskHigh, riskLevel(40))
}

func TestRankOrdersByConfidenceThenStrength(t *testing.T) {
	g := NewGenerator(scoring.NewModel(0.01, 0.9))
	recs := []models.Recommendation{
		{Symbol: "A", Confidence: 70, Strength: 50},
		{Symbol: "B", Confidence: 90, Strength: 40},
		{Symbol: "C", Confidence: 70, Strength: 80},
	}

	ranked := g.Rank(recs)

	require.Len(t, ranked, 3)
	assert.Equal(t, "B", ranked[0].Symbol)
	assert.Equal(t, "C", ranked[1].Symbol)
	assert.Equal(t, "A", ranked[2].Symbol)
}

func TestRationaleNeverEmpty(t *testing.T) {
	flat := models.IndicatorSet{RSI: 50, Pattern: models.PatternUnknown}
	reasons := rationale(flat)
	require.Len(t, reasons, 1)
	assert.Equal(t, "Technical setup", reasons[0])
}
