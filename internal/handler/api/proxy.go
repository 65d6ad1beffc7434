package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	drepo "MarketPulse/internal/domain/repository"
	xlogger "MarketPulse/pkg/logger"
)

// ProxyHandler passes raw upstream provider payloads through unchanged,
// so browser clients can hit rate-limited vendor APIs without exposing
// server-side keys. Upstream failures map to a 500 with the error text.
type ProxyHandler struct {
	logger  *xlogger.Logger
	polygon drepo.RawQuoteProvider
	twelve  drepo.RawQuoteProvider
	alpha   drepo.RawQuoteProvider
}

func NewProxyHandler(logger *xlogger.Logger, polygon, twelve, alpha drepo.RawQuoteProvider) *ProxyHandler {
	return &ProxyHandler{logger: logger, polygon: polygon, twelve: twelve, alpha: alpha}
}

func (h *ProxyHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/polygon/:symbol", h.proxy(h.polygon))
	g.GET("/twelve/:symbol", h.proxy(h.twelve))
	g.GET("/alpha/:symbol", h.proxy(h.alpha))
}

func (h *ProxyHandler) proxy(p drepo.RawQuoteProvider) echo.HandlerFunc {
	return func(c echo.Context) error {
		symbol := strings.ToUpper(c.Param("symbol"))
		if symbol == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "symbol is required"})
		}

		raw, err := p.FetchRaw(c.Request().Context(), symbol)
		if err != nil {
			h.logger.Error("proxy fetch failed",
				xlogger.String("provider", p.Name()),
				xlogger.String("symbol", symbol),
				xlogger.Error(err))
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSONBlob(http.StatusOK, raw)
	}
}
