package providers

import (
	"context"
	"hash/fnv"
	"math/rand"
	"sync"
	"time"

	"MarketPulse/internal/domain/models"
)

// Synthetic generates plausible quotes and flow when every real
// provider has failed or none is configured. Output is flagged
// Synthetic so downstream consumers can tell mock data apart, and the
// per-symbol random stream is seeded from the symbol name so the shape
// stays deterministic across calls.
type Synthetic struct {
	mu    sync.Mutex
	rngs  map[string]*rand.Rand
	bases map[string]float64
}

// NewSynthetic creates the fallback generator.
func NewSynthetic() *Synthetic {
	return &Synthetic{
		rngs:  make(map[string]*rand.Rand),
		bases: make(map[string]float64),
	}
}

func (s *Synthetic) Name() string { return "synthetic" }

// Fetch never fails; it closes the provider chain.
func (s *Synthetic) Fetch(_ context.Context, symbol string) (*models.Quote, error) {
	return s.Quote(symbol), nil
}

// Quote produces a synthetic quote with a stable base price per symbol
// and a small random walk around it.
func (s *Synthetic) Quote(symbol string) *models.Quote {
	s.mu.Lock()
	rng, ok := s.rngs[symbol]
	if !ok {
		rng = rand.New(rand.NewSource(int64(seedFor(symbol))))
		s.rngs[symbol] = rng
		s.bases[symbol] = 100 + rng.Float64()*400
	}
	base := s.bases[symbol]
	changePct := (rng.Float64() - 0.5) * 10 // -5%..+5%
	price := base * (1 + changePct/100)
	volume := float64(rng.Intn(9_000_000) + 1_000_000)
	avgVolume := volume / (1 + rng.Float64())
	s.mu.Unlock()

	return &models.Quote{
		Symbol:        symbol,
		Price:         price,
		Open:          base,
		High:          price * 1.02,
		Low:           price * 0.98,
		Volume:        volume,
		AverageVolume: avgVolume,
		Timestamp:     time.Now(),
		Synthetic:     true,
	}
}

// Flow produces synthetic options flow for a symbol.
func (s *Synthetic) Flow(symbol string) []models.OptionsFlowEntry {
	q := s.Quote(symbol)

	s.mu.Lock()
	rng := s.rngs[symbol]
	n := rng.Intn(4) + 2
	entries := make([]models.OptionsFlowEntry, 0, n)
	for i := 0; i < n; i++ {
		contract := models.ContractCall
		sentiment := models.SentimentBullish
		if rng.Float64() < 0.5 {
			contract = models.ContractPut
			sentiment = models.SentimentBearish
		}
		entries = append(entries, models.OptionsFlowEntry{
			Symbol:    symbol,
			Contract:  contract,
			Strike:    float64(int(q.Price/5)) * 5,
			Expiry:    time.Now().AddDate(0, 0, rng.Intn(30)+1),
			Premium:   float64(rng.Intn(1_000_000)),
			Volume:    float64(rng.Intn(5000)),
			Sentiment: sentiment,
		})
	}
	s.mu.Unlock()
	return entries
}

func seedFor(symbol string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	return h.Sum32()
}
