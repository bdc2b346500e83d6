package middleware

import (
	"net/http"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/errs"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/server"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/storeerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// NotFoundMessage is the body of every 404 caused by an unmatched route.
const NotFoundMessage = "not found"

// GlobalMiddlewares groups the middleware applied to every route together
// with the global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS allows the origins listed in the server config (all by default).
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger writes one "API" line per request, at a level chosen from
// the final status code.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// The error handler has not written the response yet when a
			// handler returns an error, so v.Status may still read 200.
			if v.Error != nil {
				statusCode, _ = resolveError(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is the single funnel every failed request goes
// through. The response is always plain text:
//   - an error carrying field errors is a 400 with the first field message
//   - an *errs.HTTPError keeps its status and message
//   - a route miss is a 404 "not found"
//   - store driver errors are classified by storeerr, anything left is a 500
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	status, message := resolveError(err)

	logger := GetLogger(c)
	if status >= http.StatusInternalServerError {
		logger.Error().Stack().
			Err(err).
			Int("status", status).
			Msg(message)
	} else {
		logger.Debug().
			Err(err).
			Int("status", status).
			Msg(message)
	}

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.String(status, message)
}

// resolveError maps err to the status and message sent to the client.
func resolveError(err error) (int, string) {
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			// Unknown paths and unknown methods on known paths are both a
			// route miss for clients.
			if echoErr.Code == http.StatusNotFound || echoErr.Code == http.StatusMethodNotAllowed {
				return http.StatusNotFound, NotFoundMessage
			}
			if msg, ok := echoErr.Message.(string); ok && msg != "" {
				return echoErr.Code, msg
			}
			return echoErr.Code, http.StatusText(echoErr.Code)
		}

		err = storeerr.HandleError(err)
	}

	if errors.As(err, &httpErr) {
		if len(httpErr.Errors) > 0 {
			return http.StatusBadRequest, httpErr.Errors[0].Message()
		}
		return httpErr.Status, httpErr.Message
	}

	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
