package ports

import "go.trai.ch/refgraph/internal/core/domain"

// Metrics records engine counters.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// RegistryLookup records a registry membership lookup and whether the cache served it.
	RegistryLookup(hit bool)
	// ProjectLoad records a project load and whether the cache served it.
	ProjectLoad(hit bool)
	// ReferenceResolved records a successful reference resolution.
	ReferenceResolved(kind domain.ReferenceKind)
	// ModuleDropped records a module excluded from a closure because it could not be inspected.
	ModuleDropped()
}

// NopMetrics discards every observation.
type NopMetrics struct{}

// RegistryLookup implements Metrics.
func (NopMetrics) RegistryLookup(bool) {}

// ProjectLoad implements Metrics.
func (NopMetrics) ProjectLoad(bool) {}

// ReferenceResolved implements Metrics.
func (NopMetrics) ReferenceResolved(domain.ReferenceKind) {}

// ModuleDropped implements Metrics.
func (NopMetrics) ModuleDropped() {}
