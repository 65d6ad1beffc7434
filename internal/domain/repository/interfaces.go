package repository

import (
	"context"
	"errors"

	"MarketPulse/internal/domain/models"
)

// ErrNoState is returned by ModelStore.Load when nothing has been saved yet.
var ErrNoState = errors.New("model state not found")

// QuoteProvider fetches one symbol from an upstream source and
// normalizes whatever shape it returns into a Quote.
type QuoteProvider interface {
	Name() string
	Fetch(ctx context.Context, symbol string) (*models.Quote, error)
}

// RawQuoteProvider additionally exposes the raw upstream payload for
// the passthrough proxy endpoints.
type RawQuoteProvider interface {
	QuoteProvider
	FetchRaw(ctx context.Context, symbol string) ([]byte, error)
}

// FlowProvider returns recent options flow records for a symbol.
type FlowProvider interface {
	Name() string
	Fetch(ctx context.Context, symbol string) ([]models.OptionsFlowEntry, error)
}

// MarketStream is a live trade feed used to keep price history warm
// between scan cycles.
type MarketStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.StreamTick, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// ModelStore persists opaque scoring-model state across sessions.
type ModelStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, state []byte) error
}

// Publisher emits generated recommendations to an external consumer.
type Publisher interface {
	Publish(ctx context.Context, recs []models.Recommendation) error
	Close() error
}

// Metrics records operational telemetry.
type Metrics interface {
	RecordFetch(provider, symbol string)
	RecordProviderError(provider string)
	RecordSynthetic(symbol string)
	RecordCacheHit(symbol string)
	RecordLastPrice(symbol string, price float64)
	RecordScanDuration(seconds float64)
	RecordRecommendation(action string)
	RecordTraining()
}
