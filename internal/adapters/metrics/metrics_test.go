package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/refgraph/internal/adapters/metrics"
	"go.trai.ch/refgraph/internal/core/domain"
)

func TestMetrics_WriteFile(t *testing.T) {
	m := metrics.New()
	m.RegistryLookup(false)
	m.RegistryLookup(true)
	m.RegistryLookup(true)
	m.ProjectLoad(false)
	m.ReferenceResolved(domain.KindComponent)
	m.ReferenceResolved(domain.KindProject)
	m.ReferenceResolved(domain.KindProject)
	m.ModuleDropped()

	path := filepath.Join(t.TempDir(), "refgraph.prom")
	require.NoError(t, m.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, `refgraph_registry_lookups_total{result="hit"} 2`)
	assert.Contains(t, text, `refgraph_registry_lookups_total{result="miss"} 1`)
	assert.Contains(t, text, `refgraph_project_loads_total{result="miss"} 1`)
	assert.Contains(t, text, `refgraph_references_resolved_total{kind="component"} 1`)
	assert.Contains(t, text, `refgraph_references_resolved_total{kind="project"} 2`)
	assert.Contains(t, text, "refgraph_modules_dropped_total 1")
}

func TestMetrics_OwnRegistry(t *testing.T) {
	a := metrics.New()
	b := metrics.New()
	a.ModuleDropped()

	families, err := b.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == "refgraph_modules_dropped_total" {
			assert.Zero(t, f.GetMetric()[0].GetCounter().GetValue())
		}
	}
}

func TestMetrics_WriteFileError(t *testing.T) {
	err := metrics.New().WriteFile(filepath.Join(t.TempDir(), "missing", "dir", "refgraph.prom"))
	assert.Error(t, err)
}
