package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/config"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/errs"
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/server"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, rateLimit float64) *server.Server {
	t.Helper()

	cfg := &config.Config{
		Primary:       config.Primary{Env: "test"},
		Server:        config.ServerConfig{CORSAllowedOrigins: []string{"*"}, RateLimit: rateLimit},
		Store:         config.StoreConfig{Driver: config.DriverMemory, ConnectTimeout: time.Second},
		Observability: config.DefaultObservabilityConfig(),
	}
	logger := zerolog.Nop()

	srv, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)
	return srv
}

func TestResolveError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "field errors report the first one",
			err:     errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{{Field: "username", Error: "is required"}, {Field: "x", Error: "y"}}),
			status:  http.StatusBadRequest,
			message: "username is required",
		},
		{
			name:    "wrapped http error keeps status",
			err:     fmt.Errorf("resolving: %w", errs.NewNotFoundError("unknown userId", true, nil)),
			status:  http.StatusNotFound,
			message: "unknown userId",
		},
		{
			name:    "route miss",
			err:     echo.ErrNotFound,
			status:  http.StatusNotFound,
			message: NotFoundMessage,
		},
		{
			name:    "wrong method is a route miss",
			err:     echo.ErrMethodNotAllowed,
			status:  http.StatusNotFound,
			message: NotFoundMessage,
		},
		{
			name:    "echo error keeps its code",
			err:     echo.NewHTTPError(http.StatusTooManyRequests, "too many requests"),
			status:  http.StatusTooManyRequests,
			message: "too many requests",
		},
		{
			name:    "store constraint violation",
			err:     fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_username_key"}),
			status:  http.StatusBadRequest,
			message: "A User with this Username already exists",
		},
		{
			name:    "unknown error is hidden",
			err:     errors.New("connection reset by peer"),
			status:  http.StatusInternalServerError,
			message: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := resolveError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, message)
		})
	}
}

func TestGlobalErrorHandlerWritesPlainText(t *testing.T) {
	srv := newTestServer(t, 0)
	global := NewGlobalMiddlewares(srv)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/exercise/log", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	global.GlobalErrorHandler(errs.NewFieldError("userId", "is required"), c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextPlain)
	assert.Equal(t, "userId is required", rec.Body.String())
}

func TestGlobalErrorHandlerSkipsCommittedResponse(t *testing.T) {
	srv := newTestServer(t, 0)
	global := NewGlobalMiddlewares(srv)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	global.GlobalErrorHandler(errors.New("late failure"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}

func TestRequestIDReusesIncomingHeader(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())

	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = GetRequestID(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.NotEqual(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestEnhanceContextExposesLoggerToRequestContext(t *testing.T) {
	srv := newTestServer(t, 0)
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	srv.Logger = &logger

	e := echo.New()
	e.Use(RequestID(), NewContextEnhancer(srv).EnhanceContext())
	e.GET("/", func(c echo.Context) error {
		GetLogger(c).Info().Msg("from echo")
		zerolog.Ctx(c.Request().Context()).Info().Msg("from service")
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	e.ServeHTTP(httptest.NewRecorder(), req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, `"request_id":"req-42"`)
		assert.Contains(t, line, `"method":"GET"`)
	}
	assert.Contains(t, lines[1], `"message":"from service"`)
}

func TestGetLoggerFallsBackToNop(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	logger := GetLogger(c)
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestRecordRequestsLabelsByRoute(t *testing.T) {
	srv := newTestServer(t, 0)
	global := NewGlobalMiddlewares(srv)

	e := echo.New()
	e.HTTPErrorHandler = global.GlobalErrorHandler
	e.Use(NewMetricsMiddleware(srv).RecordRequests())
	e.GET("/api/exercise/users", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []string{})
	})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/exercise/users", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/1", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/2", nil))

	expected := `
# HELP exercise_tracker_http_requests_total HTTP requests by method, route and status code.
# TYPE exercise_tracker_http_requests_total counter
exercise_tracker_http_requests_total{method="GET",route="/api/exercise/users",status="200"} 1
exercise_tracker_http_requests_total{method="GET",route="unmatched",status="404"} 2
`
	require.NoError(t, testutil.GatherAndCompare(srv.Registry, strings.NewReader(expected), "exercise_tracker_http_requests_total"))
}

func TestRateLimitRejectsAndCounts(t *testing.T) {
	srv := newTestServer(t, 1)
	global := NewGlobalMiddlewares(srv)
	limiter := NewRateLimitMiddleware(srv)
	require.True(t, limiter.Enabled())

	e := echo.New()
	e.HTTPErrorHandler = global.GlobalErrorHandler
	e.Use(limiter.Limit())
	e.GET("/api/exercise/users", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/exercise/users", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Contains(t, codes[1:], http.StatusTooManyRequests)

	count, err := testutil.GatherAndCount(srv.Registry, "exercise_tracker_rate_limited_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRateLimitDisabledByDefault(t *testing.T) {
	assert.False(t, NewRateLimitMiddleware(newTestServer(t, 0)).Enabled())
}
