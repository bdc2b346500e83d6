// Package middleware holds the echo middleware shared by every route:
// request ids, the request-scoped logger, New Relic tracing, request
// metrics, rate limiting, CORS, panic recovery and the global error handler
// that renders every failure as plain text.
package middleware
