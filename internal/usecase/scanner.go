package usecase

import (
	"context"
	"sync"
	"time"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
	"MarketPulse/internal/service/history"
	"MarketPulse/internal/service/indicators"
	"MarketPulse/internal/service/marketdata"
	"MarketPulse/pkg/logger"
)

// Scanner runs the periodic scan cycle over the configured symbol
// universe and holds the latest snapshot for the read API. Snapshot
// reads never block a running scan beyond a map copy.
type Scanner struct {
	symbols   []string
	chain     *marketdata.Chain
	history   *history.Store
	generator *Generator
	publisher drepo.Publisher
	metrics   drepo.Metrics
	log       *logger.Logger

	mu            sync.RWMutex
	quotes        map[string]*models.Quote
	indicatorSets map[string]models.IndicatorSet
	recs          []models.Recommendation
	lastScan      time.Time
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithPublisher emits ranked recommendations after each scan.
func WithPublisher(p drepo.Publisher) ScannerOption {
	return func(s *Scanner) { s.publisher = p }
}

// WithScannerMetrics injects the metrics recorder.
func WithScannerMetrics(m drepo.Metrics) ScannerOption {
	return func(s *Scanner) { s.metrics = m }
}

// WithScannerLogger injects the app logger.
func WithScannerLogger(l *logger.Logger) ScannerOption {
	return func(s *Scanner) { s.log = l }
}

// NewScanner assembles the scan pipeline.
func NewScanner(symbols []string, chain *marketdata.Chain, hist *history.Store, gen *Generator, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		symbols:       symbols,
		chain:         chain,
		history:       hist,
		generator:     gen,
		quotes:        make(map[string]*models.Quote),
		indicatorSets: make(map[string]models.IndicatorSet),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log, _ = logger.New(&logger.Config{Level: "info", Format: "console", Output: "stdout"})
	}
	return s
}

// Scan runs one full cycle: fetch quotes, extend history, compute
// indicators, generate and rank recommendations, publish. A cycle
// always completes; degraded inputs produce degraded output, not errors.
func (s *Scanner) Scan(ctx context.Context) {
	started := time.Now()

	quotes := s.chain.GetMultipleQuotes(ctx, s.symbols)
	indicatorSets := make(map[string]models.IndicatorSet, len(quotes))
	recs := make([]models.Recommendation, 0, len(quotes))

	for _, symbol := range s.symbols {
		quote := quotes[symbol]
		if !quote.Valid() {
			continue
		}
		s.history.Append(symbol, quote.Price)
		if s.metrics != nil {
			s.metrics.RecordLastPrice(symbol, quote.Price)
		}

		flow := s.chain.OptionsFlow(ctx, symbol)
		ind := indicators.Compute(quote, s.history.Closes(symbol), flow)
		indicatorSets[symbol] = ind

		if rec := s.generator.Generate(ind, quote); rec != nil {
			recs = append(recs, *rec)
			if s.metrics != nil {
				s.metrics.RecordRecommendation(rec.Action.String())
			}
		}
	}
	recs = s.generator.Rank(recs)

	s.mu.Lock()
	s.quotes = quotes
	s.indicatorSets = indicatorSets
	s.recs = recs
	s.lastScan = time.Now()
	s.mu.Unlock()

	if s.publisher != nil && len(recs) > 0 {
		if err := s.publisher.Publish(ctx, recs); err != nil {
			s.log.Warn("recommendation publish failed", logger.Error(err))
		}
	}

	elapsed := time.Since(started)
	if s.metrics != nil {
		s.metrics.RecordScanDuration(elapsed.Seconds())
	}
	s.log.Info("scan cycle complete",
		logger.Int("symbols", len(s.symbols)),
		logger.Int("recommendations", len(recs)),
		logger.Duration("elapsed", elapsed))
}

// Run scans immediately and then on every tick until ctx is cancelled.
func (s *Scanner) Run(ctx context.Context, interval time.Duration) {
	s.Scan(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Scan(ctx)
		}
	}
}

// Recommendations returns the latest ranked recommendations.
func (s *Scanner) Recommendations() []models.Recommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Recommendation, len(s.recs))
	copy(out, s.recs)
	return out
}

// Indicators returns the latest indicator snapshot for one symbol.
func (s *Scanner) Indicators(symbol string) (models.IndicatorSet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ind, ok := s.indicatorSets[symbol]
	return ind, ok
}

// Quotes returns the latest quotes for the requested symbols, fetching
// any not covered by the last scan.
func (s *Scanner) Quotes(ctx context.Context, symbols []string) map[string]*models.Quote {
	out := make(map[string]*models.Quote, len(symbols))
	var missing []string

	s.mu.RLock()
	for _, symbol := range symbols {
		if q, ok := s.quotes[symbol]; ok && q.Valid() {
			out[symbol] = q
		} else {
			missing = append(missing, symbol)
		}
	}
	s.mu.RUnlock()

	if len(missing) > 0 {
		for symbol, q := range s.chain.GetMultipleQuotes(ctx, missing) {
			out[symbol] = q
		}
	}
	return out
}

// Overview aggregates the last scan into a market-wide sentiment read.
func (s *Scanner) Overview() models.MarketOverview {
	s.mu.RLock()
	defer s.mu.RUnlock()

	overview := models.MarketOverview{
		Quotes:    make(map[string]*models.Quote, len(s.quotes)),
		Timestamp: s.lastScan,
	}
	var sum float64
	var n int
	for symbol, q := range s.quotes {
		overview.Quotes[symbol] = q
		if q.Valid() {
			sum += q.ChangePct()
			n++
		}
	}
	if n > 0 {
		overview.AvgChange = sum / float64(n)
	}
	switch {
	case overview.AvgChange > 0.5:
		overview.Sentiment = "BULLISH"
	case overview.AvgChange < -0.5:
		overview.Sentiment = "BEARISH"
	default:
		overview.Sentiment = "NEUTRAL"
	}
	return overview
}
