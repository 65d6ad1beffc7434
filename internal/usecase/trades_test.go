package usecase

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/service/scoring"
)

type memoryStore struct {
	saved [][]byte
}

func (s *memoryStore) Load(_ context.Context) ([]byte, error) { return nil, nil }

func (s *memoryStore) Save(_ context.Context, state []byte) error {
	s.saved = append(s.saved, state)
	return nil
}

func TestRecordTradeEvictsOldestAtCapacity(t *testing.T) {
	tm := NewTradeMemory(scoring.NewModel(0.01, 0), WithTradeCapacity(3))

	for i := 0; i < 5; i++ {
		tm.RecordTrade(context.Background(), models.Trade{Symbol: "SPY", Profit: float64(i)})
	}

	assert.Equal(t, 3, tm.Len())
}

func TestRecordTradeTrainsModelTowardOutcome(t *testing.T) {
	model := scoring.NewModel(0.5, 0)
	tm := NewTradeMemory(model, WithTradeCapacity(100))

	features := map[string]float64{"rsi": 0.3, "macd": 0.5}
	before := model.Predict(features)
	for i := 0; i < 20; i++ {
		tm.RecordTrade(context.Background(), models.Trade{Symbol: "SPY", Profit: 1.5, Features: features})
	}

	assert.Greater(t, model.Predict(features), before)
}

func TestRecordTradePersistsModelState(t *testing.T) {
	store := &memoryStore{}
	tm := NewTradeMemory(scoring.NewModel(0.01, 0), WithModelStore(store))

	tm.RecordTrade(context.Background(), models.Trade{
		Symbol:   "AAPL",
		Profit:   2.0,
		Features: map[string]float64{"rsi": 0.5},
	})

	require.Len(t, store.saved, 1)
	assert.Contains(t, string(store.saved[0]), "weights")
}

func TestPerformanceEmptyLog(t *testing.T) {
	tm := NewTradeMemory(scoring.NewModel(0.01, 0))
	perf := tm.Performance()

	assert.Equal(t, 0, perf.TotalTrades)
	assert.Zero(t, perf.WinRate)
	assert.Zero(t, perf.SharpeRatio)
	assert.Empty(t, perf.Patterns)
}

func TestPerformanceWinRateAndProfitFactor(t *testing.T) {
	tm := NewTradeMemory(scoring.NewModel(0.01, 0))
	ctx := context.Background()

	tm.RecordTrade(ctx, models.Trade{Symbol: "A", Profit: 4, Pattern: models.PatternBullFlag})
	tm.RecordTrade(ctx, models.Trade{Symbol: "B", Profit: 2, Pattern: models.PatternBullFlag})
	tm.RecordTrade(ctx, models.Trade{Symbol: "C", Profit: -2, Pattern: models.PatternDeathCross})
	tm.RecordTrade(ctx, models.Trade{Symbol: "D", Profit: -1, Pattern: models.PatternDeathCross})

	perf := tm.Performance()

	assert.Equal(t, 4, perf.TotalTrades)
	assert.InDelta(t, 50, perf.WinRate, 1e-9)
	// avg win 3, avg loss 1.5
	assert.InDelta(t, 2, perf.ProfitFactor, 1e-9)

	flag := perf.Patterns[models.PatternBullFlag.String()]
	assert.Equal(t, 2, flag.Wins)
	assert.Equal(t, 2, flag.Total)
	cross := perf.Patterns[models.PatternDeathCross.String()]
	assert.Equal(t, 0, cross.Wins)
	assert.Equal(t, 2, cross.Total)
}

func TestPerformanceProfitFactorZeroWithoutLosses(t *testing.T) {
	tm := NewTradeMemory(scoring.NewModel(0.01, 0))
	tm.RecordTrade(context.Background(), models.Trade{Symbol: "A", Profit: 5})

	assert.Zero(t, tm.Performance().ProfitFactor)
}

func TestSharpeFlatSeriesIsZero(t *testing.T) {
	assert.Zero(t, sharpe([]float64{1, 1, 1}))
	assert.Zero(t, sharpe([]float64{1}))
}

func TestSharpeAnnualized(t *testing.T) {
	// mean 0.5, population stddev 0.5 over [0, 1]
	got := sharpe([]float64{0, 1})
	assert.InDelta(t, math.Sqrt(252), got, 1e-9)
}

func TestMaxDrawdownFullGiveback(t *testing.T) {
	// peak 10, trough 0 after the final loss
	assert.InDelta(t, 100, maxDrawdown([]float64{10, -5, 3, -8}), 1e-9)
}

func TestMaxDrawdownMonotonicGainsIsZero(t *testing.T) {
	assert.Zero(t, maxDrawdown([]float64{1, 2, 3}))
}
