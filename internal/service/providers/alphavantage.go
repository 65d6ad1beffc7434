package providers

import (
	"context"
	"fmt"
	"time"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
	xhttp "MarketPulse/pkg/http"
)

// AlphaVantage serves GLOBAL_QUOTE responses from alphavantage.co.
// It sits last in the chain; the free tier is heavily throttled.
type AlphaVantage struct {
	apiKey  string
	baseURL string
	client  *xhttp.Client
}

// NewAlphaVantage creates the Alpha Vantage quote provider.
func NewAlphaVantage(apiKey, baseURL string, timeout time.Duration) *AlphaVantage {
	if baseURL == "" {
		baseURL = "https://www.alphavantage.co"
	}
	return &AlphaVantage{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (a *AlphaVantage) Name() string { return "alphavantage" }

// Alpha Vantage prefixes every field name with an ordinal.
type alphaGlobalQuote struct {
	Quote struct {
		Symbol string `json:"01. symbol"`
		Open   string `json:"02. open"`
		High   string `json:"03. high"`
		Low    string `json:"04. low"`
		Price  string `json:"05. price"`
		Volume string `json:"06. volume"`
	} `json:"Global Quote"`
}

// Fetch normalizes the GLOBAL_QUOTE payload.
func (a *AlphaVantage) Fetch(ctx context.Context, symbol string) (*models.Quote, error) {
	if a.apiKey == "" {
		return nil, ErrNotConfigured
	}
	var resp alphaGlobalQuote
	if err := a.client.SendAndParse(ctx, a.request(symbol), &resp); err != nil {
		return nil, fmt.Errorf("alphavantage fetch %s: %w", symbol, err)
	}
	price := parseFloat(resp.Quote.Price)
	if price <= 0 {
		return nil, fmt.Errorf("alphavantage: no usable price for %s", symbol)
	}
	return normalize(&models.Quote{
		Symbol:    symbol,
		Price:     price,
		Open:      parseFloat(resp.Quote.Open),
		High:      parseFloat(resp.Quote.High),
		Low:       parseFloat(resp.Quote.Low),
		Volume:    parseFloat(resp.Quote.Volume),
		Timestamp: time.Now(),
	}), nil
}

// FetchRaw returns the raw upstream JSON for the proxy passthrough.
func (a *AlphaVantage) FetchRaw(ctx context.Context, symbol string) ([]byte, error) {
	if a.apiKey == "" {
		return nil, ErrNotConfigured
	}
	var raw []byte
	if err := a.client.SendAndParse(ctx, a.request(symbol), &raw); err != nil {
		return nil, fmt.Errorf("alphavantage raw %s: %w", symbol, err)
	}
	return raw, nil
}

func (a *AlphaVantage) request(symbol string) *xhttp.RequestOptions {
	return &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    a.baseURL + "/query",
		QueryParams: map[string][]string{
			"function": {"GLOBAL_QUOTE"},
			"symbol":   {symbol},
			"apikey":   {a.apiKey},
		},
	}
}

var _ drepo.RawQuoteProvider = (*AlphaVantage)(nil)
