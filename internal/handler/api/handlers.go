package api

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"MarketPulse/internal/domain/models"
	"MarketPulse/internal/usecase"
	xhttp "MarketPulse/pkg/http"
	xlogger "MarketPulse/pkg/logger"
)

// MarketHandler exposes the scanner snapshot and trade feedback over HTTP.
type MarketHandler struct {
	logger  *xlogger.Logger
	scanner *usecase.Scanner
	trades  *usecase.TradeMemory
}

func NewMarketHandler(logger *xlogger.Logger, scanner *usecase.Scanner, trades *usecase.TradeMemory) *MarketHandler {
	return &MarketHandler{logger: logger, scanner: scanner, trades: trades}
}

func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/recommendations", h.Recommendations)
	g.GET("/indicators/:symbol", h.Indicators)
	g.GET("/quotes", h.Quotes)
	g.GET("/overview", h.Overview)
	g.GET("/performance", h.Performance)
	g.POST("/trades", h.RecordTrade)
}

func (h *MarketHandler) Recommendations(c echo.Context) error {
	recs := h.scanner.Recommendations()
	return xhttp.ListResponse(c, recs, int64(len(recs)))
}

func (h *MarketHandler) Indicators(c echo.Context) error {
	req := &models.IndicatorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	symbol := strings.ToUpper(req.Symbol)

	ind, ok := h.scanner.Indicators(symbol)
	if !ok {
		return xhttp.NotFoundResponse(c, "symbol not scanned: "+symbol)
	}
	return xhttp.SuccessResponse(c, ind)
}

func (h *MarketHandler) Quotes(c echo.Context) error {
	req := &models.QuotesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	symbols := splitSymbols(req.Symbols)
	if len(symbols) == 0 {
		return xhttp.BadRequestResponse(c, "symbols must not be empty")
	}
	quotes := h.scanner.Quotes(c.Request().Context(), symbols)
	return xhttp.SuccessResponse(c, quotes)
}

func (h *MarketHandler) Overview(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.scanner.Overview())
}

func (h *MarketHandler) Performance(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.trades.Performance())
}

func (h *MarketHandler) RecordTrade(c echo.Context) error {
	req := &models.RecordTradeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	trade := models.Trade{
		Symbol:   strings.ToUpper(req.Symbol),
		Profit:   req.Profit,
		Pattern:  models.ParsePattern(req.Pattern),
		Features: req.Features,
		ClosedAt: time.Now(),
	}
	h.trades.RecordTrade(c.Request().Context(), trade)
	return xhttp.CreatedResponse(c, map[string]int{"total_trades": h.trades.Len()})
}

func splitSymbols(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
