package marketdata

import (
	"sync"
	"time"

	"MarketPulse/internal/domain/models"
)

// quoteCache is the chain-owned TTL cache. Entries older than the TTL
// are treated as absent; synthetic fallbacks are cached like real
// quotes to avoid hammering dead providers inside the window.
type quoteCache struct {
	mu  sync.RWMutex
	m   map[string]cachedQuote
	ttl time.Duration
}

type cachedQuote struct {
	quote     *models.Quote
	fetchedAt time.Time
}

func newQuoteCache(ttl time.Duration) *quoteCache {
	return &quoteCache{
		m:   make(map[string]cachedQuote),
		ttl: ttl,
	}
}

func (c *quoteCache) get(symbol string) (*models.Quote, bool) {
	c.mu.RLock()
	e, ok := c.m[symbol]
	c.mu.RUnlock()
	if !ok || time.Since(e.fetchedAt) >= c.ttl {
		return nil, false
	}
	return e.quote, true
}

func (c *quoteCache) set(symbol string, q *models.Quote) {
	c.mu.Lock()
	c.m[symbol] = cachedQuote{quote: q, fetchedAt: time.Now()}
	c.mu.Unlock()
}

// flowCache mirrors quoteCache for options flow slices.
type flowCache struct {
	mu  sync.RWMutex
	m   map[string]cachedFlow
	ttl time.Duration
}

type cachedFlow struct {
	entries   []models.OptionsFlowEntry
	fetchedAt time.Time
}

func newFlowCache(ttl time.Duration) *flowCache {
	return &flowCache{
		m:   make(map[string]cachedFlow),
		ttl: ttl,
	}
}

func (c *flowCache) get(symbol string) ([]models.OptionsFlowEntry, bool) {
	c.mu.RLock()
	e, ok := c.m[symbol]
	c.mu.RUnlock()
	if !ok || time.Since(e.fetchedAt) >= c.ttl {
		return nil, false
	}
	return e.entries, true
}

func (c *flowCache) set(symbol string, entries []models.OptionsFlowEntry) {
	c.mu.Lock()
	c.m[symbol] = cachedFlow{entries: entries, fetchedAt: time.Now()}
	c.mu.Unlock()
}
