package providers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
	xhttp "MarketPulse/pkg/http"
)

// TwelveData serves real-time quotes from api.twelvedata.com.
// Twelve Data encodes numbers as JSON strings.
type TwelveData struct {
	apiKey  string
	baseURL string
	client  *xhttp.Client
}

// NewTwelveData creates the Twelve Data quote provider.
func NewTwelveData(apiKey, baseURL string, timeout time.Duration) *TwelveData {
	if baseURL == "" {
		baseURL = "https://api.twelvedata.com"
	}
	return &TwelveData{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (t *TwelveData) Name() string { return "twelvedata" }

type twelveQuoteResp struct {
	Symbol        string `json:"symbol"`
	Open          string `json:"open"`
	High          string `json:"high"`
	Low           string `json:"low"`
	Close         string `json:"close"`
	Volume        string `json:"volume"`
	AverageVolume string `json:"average_volume"`
	Timestamp     int64  `json:"timestamp"`
	// error shape
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Fetch normalizes the /quote payload.
func (t *TwelveData) Fetch(ctx context.Context, symbol string) (*models.Quote, error) {
	if t.apiKey == "" {
		return nil, ErrNotConfigured
	}
	var resp twelveQuoteResp
	if err := t.client.SendAndParse(ctx, t.request(symbol), &resp); err != nil {
		return nil, fmt.Errorf("twelvedata fetch %s: %w", symbol, err)
	}
	if resp.Status == "error" {
		return nil, fmt.Errorf("twelvedata: %s (code %d)", resp.Message, resp.Code)
	}
	price := parseFloat(resp.Close)
	if price <= 0 {
		return nil, fmt.Errorf("twelvedata: no usable price for %s", symbol)
	}
	ts := time.Now()
	if resp.Timestamp > 0 {
		ts = time.Unix(resp.Timestamp, 0)
	}
	return normalize(&models.Quote{
		Symbol:        symbol,
		Price:         price,
		Open:          parseFloat(resp.Open),
		High:          parseFloat(resp.High),
		Low:           parseFloat(resp.Low),
		Volume:        parseFloat(resp.Volume),
		AverageVolume: parseFloat(resp.AverageVolume),
		Timestamp:     ts,
	}), nil
}

// FetchRaw returns the raw upstream JSON for the proxy passthrough.
func (t *TwelveData) FetchRaw(ctx context.Context, symbol string) ([]byte, error) {
	if t.apiKey == "" {
		return nil, ErrNotConfigured
	}
	var raw []byte
	if err := t.client.SendAndParse(ctx, t.request(symbol), &raw); err != nil {
		return nil, fmt.Errorf("twelvedata raw %s: %w", symbol, err)
	}
	return raw, nil
}

func (t *TwelveData) request(symbol string) *xhttp.RequestOptions {
	return &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    t.baseURL + "/quote",
		QueryParams: map[string][]string{
			"symbol": {symbol},
			"apikey": {t.apiKey},
		},
	}
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

var _ drepo.RawQuoteProvider = (*TwelveData)(nil)
