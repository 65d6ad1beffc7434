package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/service/history"
	"MarketPulse/internal/service/marketdata"
	"MarketPulse/internal/service/scoring"
	"MarketPulse/internal/usecase"
	xlogger "MarketPulse/pkg/logger"
)

func newTestHandler(t *testing.T) (*MarketHandler, *echo.Echo) {
	t.Helper()
	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stderr"})
	require.NoError(t, err)

	model := scoring.NewModel(0.01, 0.9)
	chain := marketdata.NewChain(nil) // synthetic only
	scanner := usecase.NewScanner(
		[]string{"SPY", "AAPL"},
		chain,
		history.NewStore(250),
		usecase.NewGenerator(model),
	)
	scanner.Scan(context.Background())

	trades := usecase.NewTradeMemory(model)
	h := NewMarketHandler(log, scanner, trades)

	e := echo.New()
	h.RegisterRoutes(e)
	return h, e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRecommendationsEndpoint(t *testing.T) {
	_, e := newTestHandler(t)

	rec := doRequest(e, http.MethodGet, "/api/recommendations", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "data")
}

func TestIndicatorsEndpoint(t *testing.T) {
	_, e := newTestHandler(t)

	rec := doRequest(e, http.MethodGet, "/api/indicators/SPY", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rsi"`)
}

func TestIndicatorsEndpointUnknownSymbol(t *testing.T) {
	_, e := newTestHandler(t)

	rec := doRequest(e, http.MethodGet, "/api/indicators/ZZZZ", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "404")
}

func TestQuotesEndpoint(t *testing.T) {
	_, e := newTestHandler(t)

	rec := doRequest(e, http.MethodGet, "/api/quotes?symbols=SPY,AAPL", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "SPY")
	assert.Contains(t, rec.Body.String(), "AAPL")
}

func TestQuotesEndpointRequiresSymbols(t *testing.T) {
	_, e := newTestHandler(t)

	rec := doRequest(e, http.MethodGet, "/api/quotes", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "400")
}

func TestOverviewEndpoint(t *testing.T) {
	_, e := newTestHandler(t)

	rec := doRequest(e, http.MethodGet, "/api/overview", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sentiment")
}

func TestRecordTradeEndpoint(t *testing.T) {
	h, e := newTestHandler(t)

	payload := `{"symbol":"spy","profit":2.5,"pattern":"bull_flag","features":{"rsi":0.4}}`
	rec := doRequest(e, http.MethodPost, "/api/trades", payload)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, h.trades.Len())

	perf := doRequest(e, http.MethodGet, "/api/performance", "")
	assert.Contains(t, perf.Body.String(), `"total_trades":1`)
	assert.Contains(t, perf.Body.String(), "bull_flag")
}

func TestRecordTradeEndpointRequiresSymbol(t *testing.T) {
	h, e := newTestHandler(t)

	rec := doRequest(e, http.MethodPost, "/api/trades", `{"profit":1}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_REQUIRED")
	assert.Equal(t, 0, h.trades.Len())
}
