// Package metrics exposes Prometheus metrics for the status daemon's probe
// runs. Everything lives on a private registry so tests never collide.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KothaGPT/monitoring/internal/domain"
)

// Collector records probe outcomes. A nil Collector is a no-op so the CLI
// paths can skip metrics entirely.
type Collector struct {
	registry       *prometheus.Registry
	runsTotal      *prometheus.CounterVec
	checksTotal    *prometheus.CounterVec
	responseTime   *prometheus.HistogramVec
	lastRunHealthy prometheus.Gauge
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "monitoring_runs_total",
				Help: "Completed probe batches by aggregate outcome",
			},
			[]string{"outcome"},
		),
		checksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "monitoring_endpoint_checks_total",
				Help: "Endpoint checks by class and availability",
			},
			[]string{"class", "available"},
		),
		responseTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "monitoring_endpoint_response_seconds",
				Help:    "Endpoint response time in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"class"},
		),
		lastRunHealthy: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "monitoring_last_run_healthy",
				Help: "1 when the most recent aggregate verdict was healthy",
			},
		),
	}
	c.registry.MustRegister(c.runsTotal, c.checksTotal, c.responseTime, c.lastRunHealthy)
	return c
}

// ObserveCheck records one completed endpoint check. Satisfies
// probe.Observer.
func (c *Collector) ObserveCheck(class string, r domain.EndpointResult) {
	if c == nil {
		return
	}
	available := "false"
	if r.Available {
		available = "true"
	}
	c.checksTotal.WithLabelValues(class, available).Inc()
	if r.ResponseTime > 0 {
		c.responseTime.WithLabelValues(class).Observe(r.ResponseTime)
	}
}

// ObserveRun records one completed batch and its verdict.
func (c *Collector) ObserveRun(v domain.Verdict) {
	if c == nil {
		return
	}
	outcome := "unhealthy"
	healthy := 0.0
	if v.AllHealthy {
		outcome = "healthy"
		healthy = 1.0
	}
	c.runsTotal.WithLabelValues(outcome).Inc()
	c.lastRunHealthy.Set(healthy)
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
