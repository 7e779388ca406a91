package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "feedc_redis_errors_total",
	Help: "Redis command errors by command",
}, []string{"command"})

// ChainHops counts cross-feed pagination handoffs by source feed.
var ChainHops = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "feedc_feed_chain_hops_total",
	Help: "Pagination handoffs to a successor feed",
}, []string{"feed"})

// EagerMerges counts successor fetches folded into the same response.
var EagerMerges = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "feedc_feed_eager_merges_total",
	Help: "Successor feed fetches merged into the primary response",
}, []string{"feed"})

// InitMetrics creates the Prometheus middleware and registers the /metrics endpoint.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wires the Prometheus middleware into the app.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
