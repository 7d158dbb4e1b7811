// Package metrics exposes simulation progress as Prometheus collectors on a
// private registry, so several simulations in one process never collide on
// the global default registry.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every collector the simulator records.
type Registry struct {
	registry *prometheus.Registry

	Population       *prometheus.GaugeVec
	Generation       prometheus.Gauge
	Deaths           prometheus.Gauge
	GenerationsTotal *prometheus.CounterVec
	RunsTotal        *prometheus.CounterVec
	StepDuration     prometheus.Histogram
	RunDeaths        *prometheus.HistogramVec
}

// NewRegistry creates a registry with all collectors registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initPopulationMetrics()
	r.initRunMetrics()
	return r
}

func (r *Registry) initPopulationMetrics() {
	r.Population = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "epigrid_population",
			Help: "Individuals per disease state after the latest generation",
		},
		[]string{"state"},
	)

	r.Generation = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "epigrid_generation",
			Help: "Generation index of the latest step",
		},
	)

	r.Deaths = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "epigrid_deaths",
			Help: "Dead individuals after the latest generation",
		},
	)
}

func (r *Registry) initRunMetrics() {
	r.GenerationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "epigrid_generations_total",
			Help: "Total number of generations simulated",
		},
		[]string{"scenario"},
	)

	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "epigrid_runs_total",
			Help: "Total number of completed runs",
		},
		[]string{"scenario"},
	)

	r.StepDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "epigrid_step_duration_seconds",
			Help:    "Wall time of one generation step",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)

	r.RunDeaths = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "epigrid_run_deaths",
			Help:    "Deaths at the end of a run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		},
		[]string{"scenario"},
	)
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the current values in the text exposition format, for
// node_exporter's textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
