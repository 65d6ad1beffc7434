package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/service/history"
	"MarketPulse/internal/service/marketdata"
	"MarketPulse/internal/service/scoring"
)

type capturedPublish struct {
	batches [][]models.Recommendation
}

func (p *capturedPublish) Publish(_ context.Context, recs []models.Recommendation) error {
	p.batches = append(p.batches, recs)
	return nil
}

func (p *capturedPublish) Close() error { return nil }

func newTestScanner(symbols []string, opts ...ScannerOption) *Scanner {
	chain := marketdata.NewChain(nil) // synthetic quotes only
	hist := history.NewStore(250)
	gen := NewGenerator(scoring.NewModel(0.01, 0.9))
	return NewScanner(symbols, chain, hist, gen, opts...)
}

func TestScanPopulatesSnapshot(t *testing.T) {
	s := newTestScanner([]string{"SPY", "QQQ"})

	s.Scan(context.Background())

	quotes := s.Quotes(context.Background(), []string{"SPY", "QQQ"})
	require.Len(t, quotes, 2)
	for _, q := range quotes {
		assert.True(t, q.Valid())
	}

	ind, ok := s.Indicators("SPY")
	require.True(t, ok)
	assert.Equal(t, "SPY", ind.Symbol)

	_, ok = s.Indicators("MISSING")
	assert.False(t, ok)
}

func TestScanExtendsHistory(t *testing.T) {
	hist := history.NewStore(250)
	chain := marketdata.NewChain(nil)
	gen := NewGenerator(scoring.NewModel(0.01, 0.9))
	s := NewScanner([]string{"SPY"}, chain, hist, gen)

	s.Scan(context.Background())

	assert.Equal(t, 1, hist.Len("SPY"))
}

func TestQuotesFetchesUncoveredSymbols(t *testing.T) {
	s := newTestScanner([]string{"SPY"})
	s.Scan(context.Background())

	out := s.Quotes(context.Background(), []string{"SPY", "NVDA"})
	require.Len(t, out, 2)
	assert.True(t, out["NVDA"].Valid())
}

func TestOverviewSentiment(t *testing.T) {
	s := newTestScanner([]string{"SPY", "QQQ", "AAPL"})
	s.Scan(context.Background())

	overview := s.Overview()
	assert.Len(t, overview.Quotes, 3)
	assert.Contains(t, []string{"BULLISH", "BEARISH", "NEUTRAL"}, overview.Sentiment)
	assert.False(t, overview.Timestamp.IsZero())
}

func TestScanPublishesOnlyWhenRecommendationsExist(t *testing.T) {
	pub := &capturedPublish{}
	s := newTestScanner([]string{"SPY"}, WithPublisher(pub))

	s.Scan(context.Background())

	// One synthetic close cannot produce an actionable setup.
	assert.Empty(t, pub.batches)
}
