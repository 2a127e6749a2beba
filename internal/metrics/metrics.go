// Package metrics counts recipe store activity. A CLI run has no scrape
// endpoint, so the registry is written to a Prometheus textfile on exit.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "recipes"

// Metrics bundles the collectors and their registry.
type Metrics struct {
	Registry *prometheus.Registry

	Operations      *prometheus.CounterVec
	LoadFallbacks   *prometheus.CounterVec
	PersistFailures prometheus.Counter
	Recipes         prometheus.Gauge
}

// New builds a fresh registry with every collector registered.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Store operations by kind and outcome.",
		}, []string{"op", "outcome"}),
		LoadFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_fallbacks_total",
			Help:      "Loads that fell back to an empty collection, by reason.",
		}, []string{"reason"}),
		PersistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_failures_total",
			Help:      "Slot writes that failed.",
		}),
		Recipes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stored",
			Help:      "Recipes currently in the collection.",
		}),
	}
	m.Registry.MustRegister(m.Operations, m.LoadFallbacks, m.PersistFailures, m.Recipes)
	return m
}

// Op records one operation. Safe on a nil receiver.
func (m *Metrics) Op(op, outcome string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(op, outcome).Inc()
}

// Fallback records a load that degraded to an empty collection.
func (m *Metrics) Fallback(reason string) {
	if m == nil {
		return
	}
	m.LoadFallbacks.WithLabelValues(reason).Inc()
}

// PersistFailed records a failed slot write.
func (m *Metrics) PersistFailed() {
	if m == nil {
		return
	}
	m.PersistFailures.Inc()
}

// SetRecipes records the collection size.
func (m *Metrics) SetRecipes(n int) {
	if m == nil {
		return
	}
	m.Recipes.Set(float64(n))
}

// WriteTextfile dumps the registry for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
