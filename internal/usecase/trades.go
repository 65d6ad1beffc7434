package usecase

import (
	"context"
	"math"
	"sync"
	"time"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
	"MarketPulse/internal/service/scoring"
	"MarketPulse/pkg/logger"
)

const (
	defaultTradeCapacity = 100
	annualizationFactor  = 252
)

// TradeMemory keeps a bounded FIFO of closed trades and feeds each one
// back into the scoring model as a training sample. Capacity is fixed;
// the oldest trade falls off when full.
type TradeMemory struct {
	mu       sync.RWMutex
	trades   []models.Trade
	patterns map[string]*models.PatternStat
	capacity int

	model   *scoring.Model
	store   drepo.ModelStore
	log     *logger.Logger
	metrics drepo.Metrics
}

// TradeOption configures a TradeMemory.
type TradeOption func(*TradeMemory)

// WithTradeCapacity overrides the retained trade count.
func WithTradeCapacity(n int) TradeOption {
	return func(t *TradeMemory) {
		if n > 0 {
			t.capacity = n
		}
	}
}

// WithModelStore wires model state persistence after each training step.
func WithModelStore(s drepo.ModelStore) TradeOption {
	return func(t *TradeMemory) { t.store = s }
}

// WithTradeLogger injects the app logger.
func WithTradeLogger(l *logger.Logger) TradeOption {
	return func(t *TradeMemory) { t.log = l }
}

// WithTradeMetrics injects the metrics recorder.
func WithTradeMetrics(m drepo.Metrics) TradeOption {
	return func(t *TradeMemory) { t.metrics = m }
}

// NewTradeMemory creates the trade log bound to the scoring model it trains.
func NewTradeMemory(model *scoring.Model, opts ...TradeOption) *TradeMemory {
	t := &TradeMemory{
		patterns: make(map[string]*models.PatternStat),
		capacity: defaultTradeCapacity,
		model:    model,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.log == nil {
		t.log, _ = logger.New(&logger.Config{Level: "info", Format: "console", Output: "stdout"})
	}
	return t
}

// RecordTrade appends a closed trade, trains the model on its outcome
// and updates per-pattern counters. Persistence failures are logged and
// swallowed; training already happened in memory.
func (t *TradeMemory) RecordTrade(ctx context.Context, trade models.Trade) {
	if trade.ClosedAt.IsZero() {
		trade.ClosedAt = time.Now()
	}

	t.mu.Lock()
	t.trades = append(t.trades, trade)
	if len(t.trades) > t.capacity {
		t.trades = t.trades[len(t.trades)-t.capacity:]
	}
	stat, ok := t.patterns[trade.Pattern.String()]
	if !ok {
		stat = &models.PatternStat{}
		t.patterns[trade.Pattern.String()] = stat
	}
	stat.Total++
	if trade.Profit > 0 {
		stat.Wins++
	}
	t.mu.Unlock()

	if len(trade.Features) > 0 {
		target := 0.0
		if trade.Profit > 0 {
			target = 1.0
		}
		t.model.Train(trade.Features, target)
		if t.metrics != nil {
			t.metrics.RecordTraining()
		}
	}

	if t.store != nil {
		state, err := t.model.State()
		if err == nil {
			err = t.store.Save(ctx, state)
		}
		if err != nil {
			t.log.Warn("model state save failed", logger.Error(err))
		}
	}

	t.log.Info("trade recorded",
		logger.String("symbol", trade.Symbol),
		logger.Float64("profit", trade.Profit),
		logger.String("pattern", trade.Pattern.String()))
}

// Len returns the number of retained trades.
func (t *TradeMemory) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.trades)
}

// Performance derives aggregate metrics from the retained trades.
func (t *TradeMemory) Performance() models.PerformanceMetrics {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := models.PerformanceMetrics{
		TotalTrades: len(t.trades),
		Patterns:    make(map[string]models.PatternStat, len(t.patterns)),
	}
	for k, v := range t.patterns {
		out.Patterns[k] = *v
	}
	if len(t.trades) == 0 {
		return out
	}

	profits := make([]float64, len(t.trades))
	var wins, losses int
	var winSum, lossSum float64
	for i, tr := range t.trades {
		profits[i] = tr.Profit
		if tr.Profit > 0 {
			wins++
			winSum += tr.Profit
		} else if tr.Profit < 0 {
			losses++
			lossSum += -tr.Profit
		}
	}

	out.WinRate = float64(wins) / float64(len(t.trades)) * 100
	if losses > 0 && wins > 0 {
		out.ProfitFactor = (winSum / float64(wins)) / (lossSum / float64(losses))
	}
	out.SharpeRatio = sharpe(profits)
	out.MaxDrawdown = maxDrawdown(profits)
	return out
}

// sharpe annualizes mean/stddev of per-trade profits. Fewer than two
// trades or a flat series scores zero.
func sharpe(profits []float64) float64 {
	if len(profits) < 2 {
		return 0
	}
	var sum float64
	for _, p := range profits {
		sum += p
	}
	mean := sum / float64(len(profits))

	var sq float64
	for _, p := range profits {
		d := p - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(len(profits)))
	if std == 0 {
		return 0
	}
	return mean / std * math.Sqrt(annualizationFactor)
}

// maxDrawdown scans cumulative profit against its running peak and
// returns the worst decline as a percentage of that peak.
func maxDrawdown(profits []float64) float64 {
	var cum, peak, worst float64
	for _, p := range profits {
		cum += p
		if cum > peak {
			peak = cum
		}
		if peak > 0 {
			dd := (peak - cum) / peak * 100
			if dd > worst {
				worst = dd
			}
		}
	}
	return worst
}
