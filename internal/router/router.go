// Package router builds the echo instance: the global middleware chain,
// the error handler and every route group.
package router

import (
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/handler"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/middleware"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter returns the fully wired echo instance. Middleware order
// matters: tracing must run before the context enhancer so the request
// logger picks up the trace ids.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.Recover(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Metrics.RecordRequests(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
	)

	if middlewares.RateLimit.Enabled() {
		router.Use(middlewares.RateLimit.Limit())
	}

	registerSystemRoutes(router, s, h)
	registerExerciseRoutes(router, h)

	return router
}
