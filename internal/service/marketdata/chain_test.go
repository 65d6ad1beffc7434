package marketdata

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
)

type fakeProvider struct {
	name  string
	quote *models.Quote
	err   error
	calls atomic.Int64
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Fetch(_ context.Context, symbol string) (*models.Quote, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	q := *f.quote
	q.Symbol = symbol
	return &q, nil
}

type fakeFlow struct {
	entries []models.OptionsFlowEntry
	err     error
	calls   atomic.Int64
}

func (f *fakeFlow) Name() string { return "fakeflow" }

func (f *fakeFlow) Fetch(_ context.Context, _ string) ([]models.OptionsFlowEntry, error) {
	f.calls.Add(1)
	return f.entries, f.err
}

func TestChainFailsOverToNextProvider(t *testing.T) {
	broken := &fakeProvider{name: "broken", err: errors.New("connection refused")}
	healthy := &fakeProvider{name: "healthy", quote: &models.Quote{Price: 123.45, Volume: 1000}}

	c := NewChain([]drepo.QuoteProvider{broken, healthy})
	q := c.GetQuote(context.Background(), "AAPL")

	require.True(t, q.Valid())
	assert.Equal(t, 123.45, q.Price)
	assert.False(t, q.Synthetic)
	assert.Equal(t, int64(1), broken.calls.Load())
	assert.Equal(t, int64(1), healthy.calls.Load())
}

func TestChainAllProvidersFailYieldsSynthetic(t *testing.T) {
	a := &fakeProvider{name: "a", err: errors.New("boom")}
	b := &fakeProvider{name: "b", err: errors.New("bust")}

	c := NewChain([]drepo.QuoteProvider{a, b})
	q := c.GetQuote(context.Background(), "TSLA")

	require.NotNil(t, q)
	assert.True(t, q.Synthetic)
	assert.Greater(t, q.Price, 0.0)
	assert.Equal(t, "TSLA", q.Symbol)
}

func TestChainEmptyProviderListYieldsSynthetic(t *testing.T) {
	c := NewChain(nil)
	q := c.GetQuote(context.Background(), "QQQ")
	require.NotNil(t, q)
	assert.True(t, q.Synthetic)
	assert.Greater(t, q.Price, 0.0)
}

func TestChainServesFromCacheWithinTTL(t *testing.T) {
	p := &fakeProvider{name: "p", quote: &models.Quote{Price: 99, Volume: 10}}
	c := NewChain([]drepo.QuoteProvider{p}, WithQuoteTTL(time.Minute))

	first := c.GetQuote(context.Background(), "SPY")
	second := c.GetQuote(context.Background(), "SPY")

	assert.Equal(t, int64(1), p.calls.Load())
	assert.Same(t, first, second)
}

func TestChainCachesSyntheticFallback(t *testing.T) {
	p := &fakeProvider{name: "p", err: errors.New("down")}
	c := NewChain([]drepo.QuoteProvider{p}, WithQuoteTTL(time.Minute))

	c.GetQuote(context.Background(), "SPY")
	c.GetQuote(context.Background(), "SPY")

	assert.Equal(t, int64(1), p.calls.Load())
}

func TestGetMultipleQuotesCoversAllSymbols(t *testing.T) {
	p := &fakeProvider{name: "p", quote: &models.Quote{Price: 10, Volume: 5}}
	c := NewChain([]drepo.QuoteProvider{p}, WithMaxParallel(3))

	symbols := []string{"SPY", "QQQ", "AAPL", "NVDA", "TSLA"}
	out := c.GetMultipleQuotes(context.Background(), symbols)

	require.Len(t, out, len(symbols))
	for _, s := range symbols {
		require.Contains(t, out, s)
		assert.True(t, out[s].Valid(), "symbol %s", s)
	}
}

func TestOptionsFlowFallsBackToSynthetic(t *testing.T) {
	c := NewChain(nil)
	entries := c.OptionsFlow(context.Background(), "AAPL")
	assert.NotEmpty(t, entries)

	failing := &fakeFlow{err: errors.New("401")}
	c2 := NewChain(nil, WithFlowProvider(failing))
	entries2 := c2.OptionsFlow(context.Background(), "AAPL")
	assert.NotEmpty(t, entries2)
	assert.Equal(t, int64(1), failing.calls.Load())
}

func TestOptionsFlowCached(t *testing.T) {
	flow := &fakeFlow{entries: []models.OptionsFlowEntry{{Symbol: "SPY", Premium: 1000}}}
	c := NewChain(nil, WithFlowProvider(flow), WithFlowTTL(time.Minute))

	c.OptionsFlow(context.Background(), "SPY")
	c.OptionsFlow(context.Background(), "SPY")

	assert.Equal(t, int64(1), flow.calls.Load())
}
