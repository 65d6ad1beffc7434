package marketdata

import (
	"context"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
	"MarketPulse/internal/service/providers"
	"MarketPulse/internal/service/ratelimit"
	"MarketPulse/pkg/logger"
)

const (
	defaultQuoteTTL       = 30 * time.Second
	defaultFlowTTL        = 60 * time.Second
	defaultAttemptTimeout = 5 * time.Second
	defaultMaxParallel    = 8
)

// Option configures a Chain.
type Option func(*Chain)

// Chain resolves quotes through an ordered list of providers with a
// TTL cache in front and a synthetic generator behind. Provider
// failures advance the chain and are never surfaced to callers; the
// worst case is a flagged synthetic quote, never a nil.
type Chain struct {
	providers      []drepo.QuoteProvider
	flow           drepo.FlowProvider
	synthetic      *providers.Synthetic
	quotes         *quoteCache
	flows          *flowCache
	breakers       map[string]*gobreaker.CircuitBreaker
	limiter        *ratelimit.Limiter
	group          singleflight.Group
	attemptTimeout time.Duration
	maxParallel    int
	log            *logger.Logger
	metrics        drepo.Metrics
}

// NewChain creates a provider chain. Providers are tried in the order
// given; an empty list degrades straight to synthetic quotes.
func NewChain(quoteProviders []drepo.QuoteProvider, opts ...Option) *Chain {
	c := &Chain{
		providers:      quoteProviders,
		synthetic:      providers.NewSynthetic(),
		attemptTimeout: defaultAttemptTimeout,
		maxParallel:    defaultMaxParallel,
		quotes:         newQuoteCache(defaultQuoteTTL),
		flows:          newFlowCache(defaultFlowTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log, _ = logger.New(&logger.Config{Level: "info", Format: "console", Output: "stdout"})
	}

	c.breakers = make(map[string]*gobreaker.CircuitBreaker, len(c.providers))
	for _, p := range c.providers {
		c.breakers[p.Name()] = newBreaker(p.Name())
	}
	return c
}

// newBreaker trips after 3 consecutive failures and probes again after
// 30 seconds; an open breaker just means the chain skips ahead.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	st := gobreaker.Settings{Name: name}
	st.Interval = 60 * time.Second
	st.Timeout = 30 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 3
	}
	return gobreaker.NewCircuitBreaker(st)
}

// GetQuote returns a quote for symbol, served from cache inside the
// TTL window. Concurrent misses for the same symbol are collapsed into
// a single upstream fetch.
func (c *Chain) GetQuote(ctx context.Context, symbol string) *models.Quote {
	if q, ok := c.quotes.get(symbol); ok {
		if c.metrics != nil {
			c.metrics.RecordCacheHit(symbol)
		}
		return q
	}

	v, _, _ := c.group.Do(symbol, func() (interface{}, error) {
		return c.fetch(ctx, symbol), nil
	})
	return v.(*models.Quote)
}

func (c *Chain) fetch(ctx context.Context, symbol string) *models.Quote {
	for _, p := range c.providers {
		if c.limiter != nil && !c.limiter.Allow(p.Name()) {
			c.log.Debug("provider rate limited", logger.String("provider", p.Name()))
			continue
		}
		q, err := c.attempt(ctx, p, symbol)
		if err != nil {
			if c.metrics != nil {
				c.metrics.RecordProviderError(p.Name())
			}
			c.log.Warn("provider fetch failed",
				logger.String("provider", p.Name()),
				logger.String("symbol", symbol),
				logger.Error(err))
			continue
		}
		if !q.Valid() {
			continue
		}
		c.quotes.set(symbol, q)
		if c.metrics != nil {
			c.metrics.RecordFetch(p.Name(), symbol)
		}
		return q
	}

	// Synthetic fallback is cached too, so dead providers are not
	// hammered inside the TTL window.
	q := c.synthetic.Quote(symbol)
	c.quotes.set(symbol, q)
	if c.metrics != nil {
		c.metrics.RecordSynthetic(symbol)
	}
	c.log.Warn("all providers failed, serving synthetic quote", logger.String("symbol", symbol))
	return q
}

// attempt runs one provider call under its circuit breaker and a
// per-attempt timeout, so a hanging upstream cannot stall the chain.
func (c *Chain) attempt(ctx context.Context, p drepo.QuoteProvider, symbol string) (*models.Quote, error) {
	br := c.breakers[p.Name()]
	res, err := br.Execute(func() (interface{}, error) {
		actx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
		defer cancel()
		return p.Fetch(actx, symbol)
	})
	if err != nil {
		return nil, err
	}
	return res.(*models.Quote), nil
}

// GetMultipleQuotes fetches each symbol independently with bounded
// parallelism and returns a map keyed by symbol. Every requested
// symbol is present in the result.
func (c *Chain) GetMultipleQuotes(ctx context.Context, symbols []string) map[string]*models.Quote {
	out := make(map[string]*models.Quote, len(symbols))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxParallel)
	for _, symbol := range symbols {
		g.Go(func() error {
			q := c.GetQuote(gctx, symbol)
			mu.Lock()
			out[symbol] = q
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	return out
}

// OptionsFlow returns flow entries for symbol, cached for the flow TTL.
// A missing or failing flow provider degrades to synthetic flow.
func (c *Chain) OptionsFlow(ctx context.Context, symbol string) []models.OptionsFlowEntry {
	if entries, ok := c.flows.get(symbol); ok {
		return entries
	}
	if c.flow != nil {
		actx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
		entries, err := c.flow.Fetch(actx, symbol)
		cancel()
		if err == nil {
			c.flows.set(symbol, entries)
			return entries
		}
		c.log.Warn("options flow fetch failed",
			logger.String("symbol", symbol),
			logger.Error(err))
	}
	entries := c.synthetic.Flow(symbol)
	c.flows.set(symbol, entries)
	return entries
}

// WithFlowProvider wires the options flow source.
func WithFlowProvider(p drepo.FlowProvider) Option {
	return func(c *Chain) { c.flow = p }
}

// WithQuoteTTL sets the quote cache validity window.
func WithQuoteTTL(ttl time.Duration) Option {
	return func(c *Chain) {
		if ttl > 0 {
			c.quotes = newQuoteCache(ttl)
		}
	}
}

// WithFlowTTL sets the flow cache validity window.
func WithFlowTTL(ttl time.Duration) Option {
	return func(c *Chain) {
		if ttl > 0 {
			c.flows = newFlowCache(ttl)
		}
	}
}

// WithAttemptTimeout bounds a single provider attempt.
func WithAttemptTimeout(d time.Duration) Option {
	return func(c *Chain) {
		if d > 0 {
			c.attemptTimeout = d
		}
	}
}

// WithMaxParallel bounds concurrent per-symbol fetches.
func WithMaxParallel(n int) Option {
	return func(c *Chain) {
		if n > 0 {
			c.maxParallel = n
		}
	}
}

// WithRateLimit applies a shared per-provider token bucket.
func WithRateLimit(capacity, refillPerSec float64) Option {
	return func(c *Chain) { c.limiter = ratelimit.New(capacity, refillPerSec) }
}

// WithLogger injects the app logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Chain) { c.log = l }
}

// WithMetrics injects the metrics recorder.
func WithMetrics(m drepo.Metrics) Option {
	return func(c *Chain) { c.metrics = m }
}
