package middleware

import (
	"errors"
	"time"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/server"
	"github.com/labstack/echo/v4"
)

// unmatchedRoute labels requests that hit no route, keeping the route label
// bounded.
const unmatchedRoute = "unmatched"

type MetricsMiddleware struct {
	server *server.Server
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

// RecordRequests observes the count and latency of every request, labelled
// by route template rather than raw path.
func (m *MetricsMiddleware) RecordRequests() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status, _ = resolveError(err)
			}

			route := c.Path()
			if route == "" || errors.Is(err, echo.ErrNotFound) || errors.Is(err, echo.ErrMethodNotAllowed) {
				route = unmatchedRoute
			}

			m.server.Metrics.RecordHTTPRequest(c.Request().Method, route, status, time.Since(start))
			return err
		}
	}
}
