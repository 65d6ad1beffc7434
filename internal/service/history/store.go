package history

import "sync"

const defaultRetention = 250

// Store keeps a bounded, append-only close-price series per symbol.
// Short series are fine: the indicator calculators degrade to neutral
// defaults instead of failing.
type Store struct {
	mu        sync.RWMutex
	closes    map[string][]float64
	retention int
}

// NewStore creates a history store bounded to retention points per symbol.
func NewStore(retention int) *Store {
	if retention <= 0 {
		retention = defaultRetention
	}
	return &Store{
		closes:    make(map[string][]float64),
		retention: retention,
	}
}

// Append records a new close observation, evicting the oldest beyond
// the retention window.
func (s *Store) Append(symbol string, price float64) {
	if price <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	series := append(s.closes[symbol], price)
	if len(series) > s.retention {
		series = series[len(series)-s.retention:]
	}
	s.closes[symbol] = series
}

// Closes returns a copy of the symbol's series, oldest first.
func (s *Store) Closes(symbol string) []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series := s.closes[symbol]
	out := make([]float64, len(series))
	copy(out, series)
	return out
}

// Len returns the number of retained points for symbol.
func (s *Store) Len(symbol string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.closes[symbol])
}
