// Package metrics collects Prometheus metrics and exposes them for scraping.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds every metric the service records.
type Collector struct {
	httpRequests      *prometheus.CounterVec
	httpLatency       *prometheus.HistogramVec
	usersRegistered   *prometheus.CounterVec
	exercisesLogged   prometheus.Counter
	storeErrors       *prometheus.CounterVec
	publishFailures   *prometheus.CounterVec
	rateLimitRejected *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "exercise_tracker_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "exercise_tracker_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		usersRegistered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "exercise_tracker_user_registrations_total",
			Help: "Registration requests, split by whether a new user was created.",
		}, []string{"result"}),
		exercisesLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "exercise_tracker_exercises_logged_total",
			Help: "Exercise records stored.",
		}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "exercise_tracker_store_errors_total",
			Help: "Failed store operations by operation name.",
		}, []string{"operation"}),
		publishFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "exercise_tracker_event_publish_failures_total",
			Help: "Domain events that could not be published.",
		}, []string{"event"}),
		rateLimitRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "exercise_tracker_rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter.",
		}, []string{"route"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.usersRegistered,
		c.exercisesLogged,
		c.storeErrors,
		c.publishFailures,
		c.rateLimitRejected,
	)

	return c
}

// RecordHTTPRequest records one served request.
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordUserRegistered records a registration; created is false when the
// username already existed.
func (c *Collector) RecordUserRegistered(created bool) {
	result := "existing"
	if created {
		result = "created"
	}
	c.usersRegistered.WithLabelValues(result).Inc()
}

func (c *Collector) RecordExerciseLogged() {
	c.exercisesLogged.Inc()
}

func (c *Collector) RecordStoreError(operation string) {
	c.storeErrors.WithLabelValues(operation).Inc()
}

func (c *Collector) RecordEventPublishFailure(event string) {
	c.publishFailures.WithLabelValues(event).Inc()
}

func (c *Collector) RecordRateLimitHit(route string) {
	c.rateLimitRejected.WithLabelValues(route).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
