// Package domain contains the core domain model of project reference resolution.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// ProjectVertex is one project in a ProjectGraph.
type ProjectVertex struct {
	Key          PathKey
	Name         string
	Path         string
	Dependencies []PathKey
}

// ProjectGraph is the dependency graph between loaded projects.
type ProjectGraph struct {
	projects   map[PathKey]ProjectVertex
	buildOrder []PathKey
}

// NewProjectGraph creates an empty graph.
func NewProjectGraph() *ProjectGraph {
	return &ProjectGraph{
		projects: make(map[PathKey]ProjectVertex),
	}
}

// AddProject adds a vertex. Adding the same path twice is an error.
func (g *ProjectGraph) AddProject(v ProjectVertex) error {
	if _, exists := g.projects[v.Key]; exists {
		return zerr.With(zerr.Wrap(ErrProjectAlreadyExists, "cannot add project"), "project", v.Path)
	}
	g.projects[v.Key] = v
	return nil
}

// Len returns the number of projects in the graph.
func (g *ProjectGraph) Len() int {
	return len(g.projects)
}

// Validate checks the graph for cycles and computes the build order,
// dependencies before dependents. Roots are visited by path so the order is stable.
func (g *ProjectGraph) Validate() error {
	g.buildOrder = make([]PathKey, 0, len(g.projects))
	visited := make(map[PathKey]int) // 0: unvisited, 1: visiting, 2: visited
	var path []PathKey

	var visit func(u PathKey) error
	visit = func(u PathKey) error {
		visited[u] = 1
		path = append(path, u)

		project, exists := g.projects[u]
		if !exists {
			return zerr.With(zerr.Wrap(ErrMissingDependency, "project depends on an unknown project"), "dependency", u.String())
		}

		for _, dep := range project.Dependencies {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.buildOrder = append(g.buildOrder, u)
		return nil
	}

	keys := make([]PathKey, 0, len(g.projects))
	for k := range g.projects {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b PathKey) int { return strings.Compare(a.String(), b.String()) })

	for _, k := range keys {
		if visited[k] == 0 {
			if err := visit(k); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *ProjectGraph) buildCycleError(path []PathKey, dep PathKey) error {
	start := slices.Index(path, dep)
	names := make([]string, 0, len(path)-start+1)
	for _, k := range path[start:] {
		names = append(names, g.label(k))
	}
	names = append(names, g.label(dep))
	return zerr.With(zerr.Wrap(ErrCycleDetected, "project graph is not acyclic"), "cycle", strings.Join(names, " -> "))
}

func (g *ProjectGraph) label(k PathKey) string {
	if v, ok := g.projects[k]; ok && v.Name != "" {
		return v.Name
	}
	return k.String()
}

// Walk yields projects in build order. It assumes Validate returned nil.
func (g *ProjectGraph) Walk() iter.Seq[ProjectVertex] {
	return func(yield func(ProjectVertex) bool) {
		for _, k := range g.buildOrder {
			if !yield(g.projects[k]) {
				return
			}
		}
	}
}
