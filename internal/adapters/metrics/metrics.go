// Package metrics records engine counters in a Prometheus registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports"
	"go.trai.ch/zerr"
)

const namespace = "refgraph"

// Metrics implements ports.Metrics. It owns its registry so that nothing is
// shared with the default Prometheus registry.
type Metrics struct {
	registryLookups    *prometheus.CounterVec
	projectLoads       *prometheus.CounterVec
	referencesResolved *prometheus.CounterVec
	modulesDropped     prometheus.Counter

	registry *prometheus.Registry
}

var _ ports.Metrics = (*Metrics)(nil)

// New creates the counters and registers them.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		registryLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registry_lookups_total",
				Help:      "Shared registry membership lookups, by cache result",
			},
			[]string{"result"},
		),
		projectLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "project_loads_total",
				Help:      "Project load requests, by cache result",
			},
			[]string{"result"},
		),
		referencesResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "references_resolved_total",
				Help:      "References resolved to an artifact path, by kind",
			},
			[]string{"kind"},
		),
		modulesDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "modules_dropped_total",
				Help:      "Modules left out of a closure because they could not be inspected",
			},
		),
	}

	m.registry.MustRegister(
		m.registryLookups,
		m.projectLoads,
		m.referencesResolved,
		m.modulesDropped,
	)
	return m
}

func result(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// RegistryLookup implements ports.Metrics.
func (m *Metrics) RegistryLookup(hit bool) {
	m.registryLookups.WithLabelValues(result(hit)).Inc()
}

// ProjectLoad implements ports.Metrics.
func (m *Metrics) ProjectLoad(hit bool) {
	m.projectLoads.WithLabelValues(result(hit)).Inc()
}

// ReferenceResolved implements ports.Metrics.
func (m *Metrics) ReferenceResolved(kind domain.ReferenceKind) {
	m.referencesResolved.WithLabelValues(string(kind)).Inc()
}

// ModuleDropped implements ports.Metrics.
func (m *Metrics) ModuleDropped() {
	m.modulesDropped.Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteFile writes every metric to path in the text exposition format.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write metrics"), "path", path)
	}
	return nil
}
