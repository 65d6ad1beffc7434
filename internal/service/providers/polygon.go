package providers

import (
	"context"
	"fmt"
	"time"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
	xhttp "MarketPulse/pkg/http"
)

// Polygon serves previous-day aggregates from api.polygon.io.
type Polygon struct {
	apiKey  string
	baseURL string
	client  *xhttp.Client
}

// NewPolygon creates the Polygon quote provider.
func NewPolygon(apiKey, baseURL string, timeout time.Duration) *Polygon {
	if baseURL == "" {
		baseURL = "https://api.polygon.io"
	}
	return &Polygon{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (p *Polygon) Name() string { return "polygon" }

type polygonAgg struct {
	Close  float64 `json:"c"`
	Open   float64 `json:"o"`
	High   float64 `json:"h"`
	Low    float64 `json:"l"`
	Volume float64 `json:"v"`
	TimeMS int64   `json:"t"`
}

type polygonPrevResp struct {
	Status  string       `json:"status"`
	Results []polygonAgg `json:"results"`
}

// Fetch normalizes the /v2/aggs/ticker/{symbol}/prev payload.
func (p *Polygon) Fetch(ctx context.Context, symbol string) (*models.Quote, error) {
	if p.apiKey == "" {
		return nil, ErrNotConfigured
	}
	var resp polygonPrevResp
	if err := p.client.SendAndParse(ctx, p.request(symbol), &resp); err != nil {
		return nil, fmt.Errorf("polygon fetch %s: %w", symbol, err)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("polygon: empty results for %s", symbol)
	}
	agg := resp.Results[0]
	if agg.Close <= 0 {
		return nil, fmt.Errorf("polygon: no usable price for %s", symbol)
	}
	ts := time.Now()
	if agg.TimeMS > 0 {
		ts = time.UnixMilli(agg.TimeMS)
	}
	return normalize(&models.Quote{
		Symbol:    symbol,
		Price:     agg.Close,
		Open:      agg.Open,
		High:      agg.High,
		Low:       agg.Low,
		Volume:    agg.Volume,
		Timestamp: ts,
	}), nil
}

// FetchRaw returns the raw upstream JSON for the proxy passthrough.
func (p *Polygon) FetchRaw(ctx context.Context, symbol string) ([]byte, error) {
	if p.apiKey == "" {
		return nil, ErrNotConfigured
	}
	var raw []byte
	if err := p.client.SendAndParse(ctx, p.request(symbol), &raw); err != nil {
		return nil, fmt.Errorf("polygon raw %s: %w", symbol, err)
	}
	return raw, nil
}

func (p *Polygon) request(symbol string) *xhttp.RequestOptions {
	return &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v2/aggs/ticker/%s/prev", p.baseURL, symbol),
		QueryParams: map[string][]string{
			"adjusted": {"true"},
			"apiKey":   {p.apiKey},
		},
	}
}

var _ drepo.RawQuoteProvider = (*Polygon)(nil)
