package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name. The overlay mirror
	// and rate limiter degrade silently on Redis failure; this counter is
	// how those failures stay visible.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parfumerie_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CatalogQueries counts catalog list requests by whether a user overlay
	// was merged in.
	CatalogQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parfumerie_catalog_queries_total",
		Help: "Total catalog list queries by overlay state",
	}, []string{"overlay"})

	// ShelfWrites counts shelf mutations by status.
	ShelfWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parfumerie_shelf_writes_total",
		Help: "Total shelf set/remove operations by status",
	}, []string{"status"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "parfumerie_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

var (
	promOnce       sync.Once
	promMiddleware *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The middleware registers collectors in the default registry, so it is
// created once and shared across server instances.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMiddleware = fiberprometheus.New(serviceName)
	})
	return promMiddleware
}

// MetricsMiddleware returns the request-instrumentation handler for the
// Prometheus middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
