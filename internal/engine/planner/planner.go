// Package planner orders the projects reachable from a root project and
// decides, per project, what to copy and whether to rebuild.
package planner

import (
	"path/filepath"

	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports"
	"go.trai.ch/refgraph/internal/engine/project"
	"go.trai.ch/refgraph/internal/engine/reference"
	"go.trai.ch/zerr"
)

// Session is the part of a session the planner needs.
type Session interface {
	Load(path string) (*project.Node, error)
	IsStale(n *project.Node, key domain.ConfigurationKey) (bool, error)
	Exists(path string) bool
}

// Planner builds BuildPlans.
type Planner struct {
	logger ports.Logger
}

// New creates a Planner.
func New(logger ports.Logger) *Planner {
	return &Planner{logger: logger}
}

// Graph loads root and returns the validated graph of every project it reaches.
func (p *Planner) Graph(s Session, root string) (*domain.ProjectGraph, map[domain.PathKey]*project.Node, error) {
	n, err := s.Load(root)
	if err != nil {
		return nil, nil, err
	}

	nodes := make(map[domain.PathKey]*project.Node)
	graph := domain.NewProjectGraph()

	var add func(n *project.Node) error
	add = func(n *project.Node) error {
		key := domain.NewPathKey(n.Path())
		if _, seen := nodes[key]; seen {
			return nil
		}
		nodes[key] = n

		deps, err := dependencies(n)
		if err != nil {
			return err
		}
		v := domain.ProjectVertex{Key: key, Name: n.Name(), Path: n.Path()}
		for _, d := range deps {
			v.Dependencies = append(v.Dependencies, domain.NewPathKey(d.Path()))
		}
		if err := graph.AddProject(v); err != nil {
			return err
		}
		for _, d := range deps {
			if err := add(d); err != nil {
				return err
			}
		}
		return nil
	}
	if err := add(n); err != nil {
		return nil, nil, err
	}

	if err := graph.Validate(); err != nil {
		return nil, nil, err
	}
	return graph, nodes, nil
}

// Plan returns the projects root depends on, and root itself, in build order.
// A project is stale when its own inputs are newer than its output or when a
// project it references is stale.
func (p *Planner) Plan(s Session, root string, key domain.ConfigurationKey) (*domain.BuildPlan, error) {
	graph, nodes, err := p.Graph(s, root)
	if err != nil {
		return nil, err
	}

	plan := &domain.BuildPlan{Root: root}
	stale := make(map[domain.PathKey]bool, graph.Len())

	for v := range graph.Walk() {
		n := nodes[v.Key]
		entry, err := p.planProject(s, n, key)
		if err != nil {
			return nil, err
		}

		if entry.Status != domain.StatusStale {
			for _, dep := range v.Dependencies {
				if stale[dep] {
					p.logger.Debug(n.Name() + " is stale because a referenced project is stale")
					entry.Status = domain.StatusStale
					break
				}
			}
		}
		stale[v.Key] = entry.Status == domain.StatusStale
		plan.Projects = append(plan.Projects, entry)
	}
	return plan, nil
}

func (p *Planner) planProject(s Session, n *project.Node, key domain.ConfigurationKey) (domain.ProjectPlan, error) {
	cfg := n.Configuration(key)
	entry := domain.ProjectPlan{
		Name:          n.Name(),
		Path:          n.Path(),
		Configuration: cfg.Key,
		Output:        cfg.OutputPath(),
		Status:        domain.StatusUpToDate,
		CopyFiles:     domain.NewOutputFileSet(),
	}

	refs, err := Resolve(n, key)
	if err != nil {
		return entry, err
	}
	entry.References = refs

	for i, r := range n.References() {
		if !refs[i].CopyLocal {
			continue
		}
		if refs[i].Kind == domain.KindProject && !s.Exists(refs[i].Path) {
			// Built earlier in this plan; only its primary output is known yet.
			entry.CopyFiles.Add(refs[i].Path, filepath.Base(refs[i].Path))
			continue
		}
		files, err := r.OutputFiles(key)
		if err != nil {
			return entry, err
		}
		entry.CopyFiles.Merge(files)
	}

	isStale, err := s.IsStale(n, key)
	if err != nil {
		return entry, err
	}
	if isStale {
		entry.Status = domain.StatusStale
	}
	return entry, nil
}

// Resolve resolves every reference n declares for key, in declaration order.
func Resolve(n *project.Node, key domain.ConfigurationKey) ([]domain.ResolvedReference, error) {
	out := make([]domain.ResolvedReference, 0, len(n.References()))
	for _, r := range n.References() {
		path, err := r.Resolve(key)
		if err != nil {
			return nil, err
		}
		copyLocal, err := r.CopyLocal(key)
		if err != nil {
			return nil, err
		}
		system, err := r.IsSystemComponent(key)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ResolvedReference{
			Name:      r.Name(),
			Kind:      r.Kind(),
			Path:      path,
			CopyLocal: copyLocal,
			System:    system,
		})
	}
	return out, nil
}

// dependencies returns the projects n references directly.
func dependencies(n *project.Node) ([]*project.Node, error) {
	var deps []*project.Node
	for _, r := range n.References() {
		pr, ok := r.(*reference.Project)
		if !ok {
			continue
		}
		t, err := pr.Target()
		if err != nil {
			return nil, err
		}
		dep, ok := t.(*project.Node)
		if !ok {
			return nil, zerr.With(zerr.New("project reference target is not a loaded project"), "reference", pr.Name())
		}
		deps = append(deps, dep)
	}
	return deps, nil
}
