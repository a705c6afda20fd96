// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bond_optimizer"

// unmatchedRoute labels requests that hit no registered route so that arbitrary
// paths cannot grow label cardinality.
const unmatchedRoute = "unmatched"

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	requestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "HTTP requests currently being served.",
	})

	optimizations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "solver",
		Name:      "runs_total",
		Help:      "Solver runs by algorithm and outcome.",
	}, []string{"algorithm", "status"})

	optimizationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "solver",
		Name:      "run_duration_seconds",
		Help:      "Solver run time by algorithm.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"algorithm"})

	disagreements = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "solver",
		Name:      "disagreements_total",
		Help:      "Comparisons in which solvers reported different optimal profits.",
	})

	circuitState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_state",
		Help:      "Circuit breaker state: 0 closed, 1 open, 2 half-open.",
	}, []string{"name"})

	datasetReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "datasets",
		Name:      "reloads_total",
		Help:      "Scheduled dataset catalog reloads by outcome.",
	}, []string{"status"})

	cacheOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "operations_total",
		Help:      "Result cache operations by outcome.",
	}, []string{"operation", "result"})

	cacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "entries",
		Help:      "Selections currently held across all cache shards.",
	})

	cacheCapacity = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "capacity",
		Help:      "Total entry capacity across all cache shards.",
	})
)

// PrometheusMiddleware observes latency per route template and tracks in-flight requests.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestsInFlight.Inc()
		start := time.Now()
		defer func() {
			requestsInFlight.Dec()
			requestDuration.
				WithLabelValues(c.Request.Method, route(c), strconv.Itoa(c.Writer.Status())).
				Observe(time.Since(start).Seconds())
		}()
		c.Next()
	}
}

func route(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return unmatchedRoute
}

// RecordOptimization records one solver run.
func RecordOptimization(algorithm string, took time.Duration, status string) {
	optimizationSeconds.WithLabelValues(algorithm).Observe(took.Seconds())
	optimizations.WithLabelValues(algorithm, status).Inc()
}

func RecordSolverDisagreement() { disagreements.Inc() }

// RecordCircuitState publishes the numeric state of the named breaker.
func RecordCircuitState(name string, state int) {
	circuitState.WithLabelValues(name).Set(float64(state))
}

func RecordDatasetReload(status string) { datasetReloads.WithLabelValues(status).Inc() }

func RecordCacheOperation(operation, result string) {
	cacheOps.WithLabelValues(operation, result).Inc()
}

// AddCacheEntries adjusts the shared entry gauge. Shards report deltas so the
// gauge stays correct when several caches are alive at once.
func AddCacheEntries(delta int) { cacheEntries.Add(float64(delta)) }

// AddCacheCapacity adjusts the shared capacity gauge by delta entries.
func AddCacheCapacity(delta int) { cacheCapacity.Add(float64(delta)) }
