package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MarketPulse/internal/domain/models"
	drepo "MarketPulse/internal/domain/repository"
	xhttp "MarketPulse/pkg/http"
	"MarketPulse/pkg/util"
)

// UnusualWhales serves per-symbol options flow records.
type UnusualWhales struct {
	apiKey  string
	baseURL string
	limit   int
	client  *xhttp.Client
}

// NewUnusualWhales creates the options flow provider.
func NewUnusualWhales(apiKey, baseURL string, limit int, timeout time.Duration) *UnusualWhales {
	if baseURL == "" {
		baseURL = "https://api.unusualwhales.com"
	}
	if limit <= 0 {
		limit = 50
	}
	return &UnusualWhales{
		apiKey:  apiKey,
		baseURL: baseURL,
		limit:   limit,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (u *UnusualWhales) Name() string { return "unusualwhales" }

type uwFlowRecord struct {
	Symbol    string  `json:"symbol"`
	OrderType string  `json:"order_type"`
	Strike    float64 `json:"strike"`
	Expiry    string  `json:"expiry"`
	Premium   float64 `json:"premium"`
	Volume    float64 `json:"volume"`
	Sentiment string  `json:"sentiment"`
}

type uwFlowResp struct {
	Data []uwFlowRecord `json:"data"`
}

// Fetch returns normalized flow entries for symbol.
func (u *UnusualWhales) Fetch(ctx context.Context, symbol string) ([]models.OptionsFlowEntry, error) {
	if u.apiKey == "" {
		return nil, ErrNotConfigured
	}
	var resp uwFlowResp
	err := u.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/api/stock/%s/options-flow", u.baseURL, symbol),
		QueryParams: map[string][]string{
			"api_key": {u.apiKey},
			"limit":   {fmt.Sprintf("%d", u.limit)},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("unusualwhales fetch %s: %w", symbol, err)
	}

	entries := make([]models.OptionsFlowEntry, 0, len(resp.Data))
	for _, rec := range resp.Data {
		entries = append(entries, normalizeFlow(symbol, rec))
	}
	return entries, nil
}

func normalizeFlow(symbol string, rec uwFlowRecord) models.OptionsFlowEntry {
	sym := rec.Symbol
	if sym == "" {
		sym = symbol
	}
	contract := models.ContractCall
	if strings.EqualFold(rec.OrderType, "PUT") {
		contract = models.ContractPut
	}
	sentiment := models.SentimentNeutral
	switch strings.ToUpper(rec.Sentiment) {
	case "BULLISH":
		sentiment = models.SentimentBullish
	case "BEARISH":
		sentiment = models.SentimentBearish
	}
	expiry, _ := util.ParseTime(rec.Expiry)
	return models.OptionsFlowEntry{
		Symbol:    sym,
		Contract:  contract,
		Strike:    rec.Strike,
		Expiry:    expiry,
		Premium:   rec.Premium,
		Volume:    rec.Volume,
		Sentiment: sentiment,
	}
}

var _ drepo.FlowProvider = (*UnusualWhales)(nil)
