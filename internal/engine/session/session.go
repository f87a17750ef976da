// Package session owns every per-build cache: loaded projects, registry
// membership and resolved reference paths. A Session is discarded after one
// evaluation so nothing outlives it.
package session

import (
	"context"

	"github.com/google/uuid"
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports"
	"go.trai.ch/refgraph/internal/engine/aggregate"
	"go.trai.ch/refgraph/internal/engine/project"
	"go.trai.ch/refgraph/internal/engine/reference"
	"go.trai.ch/refgraph/internal/engine/registry"
	"go.trai.ch/refgraph/internal/engine/staleness"
	"go.trai.ch/zerr"
)

// Options are the collaborators of a session.
type Options struct {
	Workspace *domain.Workspace
	Parser    ports.DescriptorParser
	FS        ports.FileSystem
	Inspector ports.ModuleInspector
	// Registry may be nil, in which case no file is registry-provided.
	Registry ports.RegistryProvider
	Logger   ports.Logger
	Metrics  ports.Metrics
}

// Session is a single build evaluation. It is not safe for concurrent use.
type Session struct {
	workspace *domain.Workspace
	fs        ports.FileSystem
	registry  *registry.Cache
	loader    *project.Loader
	evaluator *staleness.Evaluator
	closed    bool
}

// Open acquires the registry query facility and creates the session caches.
func Open(ctx context.Context, opts Options) (*Session, error) {
	ws := opts.Workspace
	if ws == nil {
		ws = &domain.Workspace{Registry: domain.RegistrySettings{Mode: domain.RegistryNone}}
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}

	var query ports.RegistryQuery
	if opts.Registry != nil {
		q, err := opts.Registry.Open(ctx, ws.Registry)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to open registry"), "mode", string(ws.Registry.Mode))
		}
		query = q
	}

	cache := registry.NewCache(query, opts.Logger, metrics)
	env := &reference.Env{
		FS:         opts.FS,
		Framework:  ws.Framework,
		Registry:   cache,
		Aggregator: aggregate.New(opts.FS, opts.Inspector, cache, opts.Logger, metrics),
		Logger:     opts.Logger,
		Metrics:    metrics,
	}

	return &Session{
		workspace: ws,
		fs:        opts.FS,
		registry:  cache,
		loader:    project.NewLoader(opts.Parser, ws.Solution, env),
		evaluator: staleness.New(opts.FS),
	}, nil
}

// Run opens a session, calls fn and closes the session even when fn fails or panics.
func Run(ctx context.Context, opts Options, fn func(*Session) error) (err error) {
	s, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

// Close releases the registry query facility. It is safe to call more than once.
func (s *Session) Close() error {
	s.closed = true
	if err := s.registry.Close(); err != nil {
		return zerr.Wrap(err, "failed to release registry")
	}
	return nil
}

// Workspace returns the settings the session was opened with.
func (s *Session) Workspace() *domain.Workspace {
	return s.workspace
}

// Load returns the project at path with every project it references.
func (s *Session) Load(path string) (*project.Node, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.loader.Load(path)
}

// Identity returns the identity token of the project at path.
func (s *Session) Identity(path string) (uuid.UUID, error) {
	if err := s.check(); err != nil {
		return uuid.Nil, err
	}
	return s.loader.Identity(path)
}

// Document returns the parsed descriptor at path.
func (s *Session) Document(path string) (*domain.ProjectDocument, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.loader.Document(path)
}

// Projects returns every project loaded so far, dependencies first.
func (s *Session) Projects() []*project.Node {
	return s.loader.Nodes()
}

// IsProvidedByRegistry reports whether path is a shared registry member.
func (s *Session) IsProvidedByRegistry(path string) bool {
	return s.registry.Contains(path)
}

// Exists reports whether path is present on disk.
func (s *Session) Exists(path string) bool {
	return s.fs.Exists(path)
}

// IsStale reports whether the output of n for key must be rebuilt. The
// inputs are the project's references and its own descriptor.
func (s *Session) IsStale(n *project.Node, key domain.ConfigurationKey) (bool, error) {
	if err := s.check(); err != nil {
		return false, err
	}
	out, err := n.OutputPath(key)
	if err != nil {
		return false, err
	}

	inputs := make([]staleness.Input, 0, len(n.References())+1)
	inputs = append(inputs, staleness.File{FS: s.fs, Path: n.Path()})
	for _, r := range n.References() {
		inputs = append(inputs, r)
	}

	stale, err := s.evaluator.IsStale(out, inputs, key)
	if err != nil {
		return false, zerr.With(err, "project", n.Name())
	}
	return stale, nil
}

func (s *Session) check() error {
	if s.closed {
		return zerr.Wrap(domain.ErrSessionClosed, "session is closed")
	}
	return nil
}
