package models

import "time"

// Quote is a normalized per-symbol market snapshot. A Quote is immutable
// once created; the next fetch cycle supersedes it.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Volume        float64   `json:"volume"`
	AverageVolume float64   `json:"average_volume"`
	Timestamp     time.Time `json:"timestamp"`
	Synthetic     bool      `json:"synthetic,omitempty"`
}

// Valid reports whether the quote carries a usable price.
func (q *Quote) Valid() bool {
	return q != nil && q.Price > 0
}

// ChangePct returns the intraday percentage change from open.
func (q *Quote) ChangePct() float64 {
	if q.Open == 0 {
		return 0
	}
	return (q.Price - q.Open) / q.Open * 100
}

// VolumeRatio returns volume relative to average volume. Average volume
// falls back to the quote's own volume when unknown, so the ratio never
// divides by zero on a populated quote.
func (q *Quote) VolumeRatio() float64 {
	avg := q.AverageVolume
	if avg == 0 {
		avg = q.Volume
	}
	if avg == 0 {
		return 0
	}
	return q.Volume / avg
}

// StreamTick is a single live trade observation from a streaming source.
type StreamTick struct {
	Symbol    string
	Price     float64
	Volume    float64
	Timestamp time.Time
}

// MarketOverview summarizes one scan cycle across the configured universe.
type MarketOverview struct {
	Quotes    map[string]*Quote `json:"quotes"`
	Sentiment string            `json:"sentiment"`
	AvgChange float64           `json:"avg_change"`
	Timestamp time.Time         `json:"timestamp"`
}
