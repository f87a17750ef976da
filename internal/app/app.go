// Package app implements the application layer for refgraph.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/refgraph/internal/adapters/metrics"  //nolint:depguard // Wired in app layer
	"go.trai.ch/refgraph/internal/adapters/registry" //nolint:depguard // Wired in app layer
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports"
	"go.trai.ch/refgraph/internal/engine/planner"
	"go.trai.ch/refgraph/internal/engine/project"
	"go.trai.ch/refgraph/internal/engine/session"
	"go.trai.ch/zerr"
)

const tracerName = "refgraph"

// App represents the main application logic.
type App struct {
	workspaces ports.WorkspaceLoader
	parser     ports.DescriptorParser
	fs         ports.FileSystem
	inspector  ports.ModuleInspector
	registry   *registry.Provider
	watcher    ports.Watcher
	logger     ports.Logger
	metrics    *metrics.Metrics
	planner    *planner.Planner
}

// New creates a new App instance.
func New(
	workspaces ports.WorkspaceLoader,
	parser ports.DescriptorParser,
	fsys ports.FileSystem,
	inspector ports.ModuleInspector,
	provider *registry.Provider,
	watcher ports.Watcher,
	log ports.Logger,
	m *metrics.Metrics,
	p *planner.Planner,
) *App {
	return &App{
		workspaces: workspaces,
		parser:     parser,
		fs:         fsys,
		inspector:  inspector,
		registry:   provider,
		watcher:    watcher,
		logger:     log,
		metrics:    m,
		planner:    p,
	}
}

// Options select the project configuration and workspace of one operation.
type Options struct {
	// Configuration is "Name" or "Name|Platform". Empty means the workspace default.
	Configuration string
	// Platform overrides the platform part of Configuration.
	Platform string
	// Workspace is the directory the workspace file search starts from.
	// Empty means the project's directory.
	Workspace string
	// MetricsFile receives the engine counters in Prometheus text format when set.
	MetricsFile string
}

// OutputsResult is the output file set of one project configuration.
type OutputsResult struct {
	Project       string
	Configuration domain.ConfigurationKey
	Output        string
	Files         []domain.OutputFile
}

// StaleResult is the staleness verdict of one project configuration.
type StaleResult struct {
	Project       string
	Configuration domain.ConfigurationKey
	Output        string
	Stale         bool
}

// ResolveResult lists the resolved references of one project configuration.
type ResolveResult struct {
	Project       string
	Configuration domain.ConfigurationKey
	References    []domain.ResolvedReference
}

// Resolve resolves every reference of the project at path.
func (a *App) Resolve(ctx context.Context, path string, opts Options) (*ResolveResult, error) {
	var result *ResolveResult
	err := a.withProject(ctx, "resolve", path, opts, func(_ *session.Session, n *project.Node, key domain.ConfigurationKey) error {
		refs, err := planner.Resolve(n, key)
		if err != nil {
			return err
		}
		result = &ResolveResult{Project: n.Name(), Configuration: n.Configuration(key).Key, References: refs}
		return nil
	})
	return result, err
}

// Outputs returns the files a consumer of the project at path receives.
func (a *App) Outputs(ctx context.Context, path string, opts Options) (*OutputsResult, error) {
	var result *OutputsResult
	err := a.withProject(ctx, "outputs", path, opts, func(_ *session.Session, n *project.Node, key domain.ConfigurationKey) error {
		files, err := n.OutputFiles(key)
		if err != nil {
			return err
		}
		cfg := n.Configuration(key)
		result = &OutputsResult{Project: n.Name(), Configuration: cfg.Key, Output: cfg.OutputPath()}
		for f := range files.All() {
			result.Files = append(result.Files, f)
		}
		return nil
	})
	return result, err
}

// Stale reports whether the project at path must be rebuilt.
func (a *App) Stale(ctx context.Context, path string, opts Options) (*StaleResult, error) {
	var result *StaleResult
	err := a.withProject(ctx, "stale", path, opts, func(s *session.Session, n *project.Node, key domain.ConfigurationKey) error {
		stale, err := s.IsStale(n, key)
		if err != nil {
			return err
		}
		cfg := n.Configuration(key)
		result = &StaleResult{Project: n.Name(), Configuration: cfg.Key, Output: cfg.OutputPath(), Stale: stale}
		trace.SpanFromContext(ctx).SetAttributes(attribute.Bool("stale", stale))
		return nil
	})
	return result, err
}

// Plan returns the build plan of the project at path and every project it reaches.
func (a *App) Plan(ctx context.Context, path string, opts Options) (*domain.BuildPlan, error) {
	var plan *domain.BuildPlan
	err := a.withProject(ctx, "plan", path, opts, func(s *session.Session, n *project.Node, key domain.ConfigurationKey) error {
		var err error
		plan, err = a.planner.Plan(s, n.Path(), key)
		return err
	})
	return plan, err
}

// Graph returns the projects reachable from the project at path in build order.
func (a *App) Graph(ctx context.Context, path string, opts Options) ([]domain.ProjectVertex, error) {
	var vertices []domain.ProjectVertex
	err := a.withProject(ctx, "graph", path, opts, func(s *session.Session, n *project.Node, _ domain.ConfigurationKey) error {
		graph, _, err := a.planner.Graph(s, n.Path())
		if err != nil {
			return err
		}
		for v := range graph.Walk() {
			vertices = append(vertices, v)
		}
		return nil
	})
	return vertices, err
}

// SnapshotRegistry indexes the registry directory dir and writes the snapshot to out.
// It returns the number of distinct member names.
func (a *App) SnapshotRegistry(ctx context.Context, dir, out string) (int, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "registry.snapshot",
		trace.WithAttributes(attribute.String("dir", dir), attribute.String("snapshot", out)))
	defer span.End()

	idx, err := a.registry.OpenIndex(domain.RegistrySettings{Dir: dir})
	if err != nil {
		return 0, record(span, err)
	}
	if err := idx.Save(out); err != nil {
		return 0, record(span, err)
	}
	a.logger.Info("indexed " + dir + " into " + out)
	return idx.Len(), nil
}

// ServeRegistry answers membership requests from r on w until r is exhausted.
func (a *App) ServeRegistry(ctx context.Context, settings domain.RegistrySettings, r io.Reader, w io.Writer) error {
	idx, err := a.registry.OpenIndex(settings)
	if err != nil {
		return err
	}
	a.logger.Debug("serving registry index of " + idx.Root)
	return registry.Serve(ctx, r, w, registry.NewIndexQuery(idx, a.registry.Hasher()))
}

// withProject runs fn inside a traced session with the project at path loaded.
func (a *App) withProject(
	ctx context.Context,
	op, path string,
	opts Options,
	fn func(*session.Session, *project.Node, domain.ConfigurationKey) error,
) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, op, trace.WithAttributes(attribute.String("project", path)))
	defer span.End()

	err := a.runSession(ctx, path, opts, func(s *session.Session, root string) error {
		n, err := s.Load(root)
		if err != nil {
			return err
		}
		key := a.configuration(s.Workspace(), n, opts)
		span.SetAttributes(attribute.String("configuration", n.Configuration(key).Key.String()))
		return fn(s, n, key)
	})
	if werr := a.writeMetrics(opts); werr != nil && err == nil {
		err = werr
	}
	return record(span, err)
}

// runSession loads the workspace for the project at path and runs fn in a fresh session.
func (a *App) runSession(ctx context.Context, path string, opts Options, fn func(*session.Session, string) error) error {
	root, err := a.descriptorPath(path)
	if err != nil {
		return err
	}

	start := opts.Workspace
	if start == "" {
		start = filepath.Dir(root)
	}
	ws, err := a.workspaces.Load(start)
	if err != nil {
		return zerr.Wrap(err, "failed to load workspace")
	}

	return session.Run(ctx, session.Options{
		Workspace: ws,
		Parser:    a.parser,
		FS:        a.fs,
		Inspector: a.inspector,
		Registry:  a.registry,
		Logger:    a.logger,
		Metrics:   a.metrics,
	}, func(s *session.Session) error {
		return fn(s, root)
	})
}

// descriptorPath accepts a descriptor file or a directory holding exactly one descriptor.
func (a *App) descriptorPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "invalid project path"), "path", path)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return abs, nil
	}

	var matches []string
	for _, pattern := range domain.DescriptorPatterns {
		found, err := a.fs.Glob(abs, pattern)
		if err != nil {
			return "", err
		}
		matches = append(matches, found...)
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", zerr.With(zerr.Wrap(domain.ErrDescriptorNotFound, "directory holds no project descriptor"), "path", abs)
	default:
		err := zerr.Wrap(domain.ErrDescriptorNotFound, "directory holds more than one project descriptor")
		return "", zerr.With(zerr.With(err, "path", abs), "candidates", strings.Join(matches, ", "))
	}
}

// configuration picks the key for n: the requested one, then the workspace
// default, then the project's first declared configuration.
func (a *App) configuration(ws *domain.Workspace, n *project.Node, opts Options) domain.ConfigurationKey {
	key := domain.ParseConfigurationKey(opts.Configuration)
	if key.IsZero() && ws != nil {
		key = ws.DefaultConfiguration
	}
	if key.IsZero() {
		key = n.Configurations()[0].Key
	}
	if opts.Platform != "" {
		key = domain.NewConfigurationKey(key.Name(), opts.Platform)
	}
	return key
}

func (a *App) writeMetrics(opts Options) error {
	if opts.MetricsFile == "" || a.metrics == nil {
		return nil
	}
	if err := a.metrics.WriteFile(opts.MetricsFile); err != nil {
		return err
	}
	a.logger.Debug("metrics written to " + opts.MetricsFile)
	return nil
}

func record(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
