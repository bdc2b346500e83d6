package router

import (
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/handler"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/metrics"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that are not part of the
// exercise API: landing page, health status and Prometheus metrics.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/", h.Landing.ServeIndex)

	r.GET("/status", h.Health.CheckHealth)

	r.GET("/metrics", echo.WrapHandler(metrics.Handler(s.Registry)))
}
