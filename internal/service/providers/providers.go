package providers

import (
	"errors"

	"MarketPulse/internal/domain/models"
)

// ErrNotConfigured is returned by providers constructed without an API
// key; the chain treats it like any other provider failure.
var ErrNotConfigured = errors.New("provider not configured")

// normalize fills gaps a provider payload left behind: open/high/low
// fall back to the price itself and average volume falls back to volume
// so downstream ratio computations never divide by zero.
func normalize(q *models.Quote) *models.Quote {
	if q.Open == 0 {
		q.Open = q.Price
	}
	if q.High == 0 {
		q.High = q.Price
	}
	if q.Low == 0 {
		q.Low = q.Price
	}
	if q.AverageVolume == 0 {
		q.AverageVolume = q.Volume
	}
	return q
}
