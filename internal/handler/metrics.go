package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors for the backend.
var Metrics = struct {
	RegistrationsTotal *prometheus.CounterVec
	DailyRunDuration   prometheus.Histogram
	DailyVideosUpdated prometheus.Counter
	RequestDuration    *prometheus.HistogramVec
	RequestsInFlight   prometheus.Gauge
	DBPoolActive       prometheus.GaugeFunc
	DBPoolIdle         prometheus.GaugeFunc
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics(pool *pgxpool.Pool) {
	Metrics.RegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charatrack_registrations_total",
			Help: "Registration items processed, by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	Metrics.DailyRunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "charatrack_daily_run_duration_seconds",
			Help:    "Duration of daily view-delta runs.",
			Buckets: prometheus.DefBuckets,
		},
	)

	Metrics.DailyVideosUpdated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "charatrack_daily_videos_updated_total",
			Help: "Videos whose stats were refreshed by daily runs.",
		},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "charatrack_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "charatrack_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	// DB pool gauges — read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "charatrack_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "charatrack_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.RegistrationsTotal,
		Metrics.DailyRunDuration,
		Metrics.DailyVideosUpdated,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
	)
}

// MetricsMiddleware records request duration and in-flight count.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers.
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint folds unknown paths into one label to avoid cardinality
// explosion from scanners probing random URLs.
func sanitizeEndpoint(path string) string {
	switch path {
	case "/channels", "/videos", "/stats",
		"/register/channels", "/register/videos",
		"/update/dailyviews",
		"/health/live", "/health/ready":
		return path
	default:
		return "other"
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
