package api

import (
	"github.com/labstack/echo/v4"

	xhttp "MarketPulse/pkg/http"
)

// Router bundles the API handlers behind the server's single
// registration point.
type Router struct {
	handlers []xhttp.Handler
}

func NewRouter(handlers ...xhttp.Handler) *Router {
	return &Router{handlers: handlers}
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	for _, h := range r.handlers {
		if h != nil {
			h.RegisterRoutes(e)
		}
	}
}

var _ xhttp.Handler = (*Router)(nil)
