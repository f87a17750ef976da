// Package aggregate computes the files that must travel with a resolved artifact.
package aggregate

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports"
)

// Membership reports whether a file is provided by the shared registry.
type Membership interface {
	Contains(path string) bool
}

// Aggregator expands an artifact into its same-directory dependency closure
// and the sidecar files of every member.
type Aggregator struct {
	fs        ports.FileSystem
	inspector ports.ModuleInspector
	registry  Membership
	logger    ports.Logger
	metrics   ports.Metrics
}

// New creates an Aggregator.
func New(
	fs ports.FileSystem,
	inspector ports.ModuleInspector,
	registry Membership,
	logger ports.Logger,
	metrics ports.Metrics,
) *Aggregator {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Aggregator{
		fs:        fs,
		inspector: inspector,
		registry:  registry,
		logger:    logger,
		metrics:   metrics,
	}
}

// Aggregate returns artifact, the dependencies found next to it and their
// related files. Dependencies are not copied when ownerIsSystem is set or when
// the registry provides them. Modules that cannot be inspected are left out.
func (a *Aggregator) Aggregate(artifact string, ownerIsSystem bool) (*domain.OutputFileSet, error) {
	set := domain.NewOutputFileSet()

	closure, err := a.Closure(artifact)
	if err != nil {
		return nil, err
	}

	for i, m := range closure {
		if i > 0 && (ownerIsSystem || a.registry.Contains(m)) {
			continue
		}
		related, err := a.Related(m)
		if err != nil {
			return nil, err
		}
		for _, f := range related {
			set.Add(f, filepath.Base(f))
		}
	}
	return set, nil
}

// Closure returns artifact followed by every module in its directory that it
// depends on, directly or transitively, in discovery order.
func (a *Aggregator) Closure(artifact string) ([]string, error) {
	dir := filepath.Dir(artifact)
	present, err := a.listing(dir)
	if err != nil {
		return nil, err
	}

	closure := []string{artifact}
	discovered := map[domain.PathKey]bool{domain.NewPathKey(artifact): true}
	depsOf := map[domain.PathKey][]string{}

	deps, err := a.inspector.Dependencies(artifact)
	if err != nil {
		a.logger.Debug("cannot inspect " + artifact + ": " + err.Error())
		return closure, nil
	}
	depsOf[domain.NewPathKey(artifact)] = deps

	pending := []string{artifact}
	for len(pending) > 0 {
		m := pending[0]
		pending = pending[1:]

		for _, name := range depsOf[domain.NewPathKey(m)] {
			candidate, ok := lookup(dir, present, name)
			if !ok {
				continue
			}
			key := domain.NewPathKey(candidate)
			if discovered[key] {
				continue
			}
			discovered[key] = true

			deps, err := a.inspector.Dependencies(candidate)
			if err != nil {
				a.metrics.ModuleDropped()
				a.logger.Debug("dropping " + candidate + " from the closure of " + artifact + ": " + err.Error())
				continue
			}
			depsOf[key] = deps
			closure = append(closure, candidate)
			pending = append(pending, candidate)
		}
	}
	return closure, nil
}

// Related returns m itself plus the files next to it that share its base name
// and carry a sidecar extension. Both "Foo.pdb" and "Foo.dll.config" relate to "Foo.dll".
func (a *Aggregator) Related(m string) ([]string, error) {
	dir := filepath.Dir(m)
	fileName := filepath.Base(m)
	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)

	matches, err := a.fs.Glob(dir, escapeGlob(base)+".*")
	if err != nil {
		return nil, err
	}

	out := []string{m}
	self := domain.NewPathKey(m)
	foldedBase, foldedExt := strings.ToLower(base), strings.ToLower(ext)
	for _, f := range matches {
		if domain.NewPathKey(f) == self {
			continue
		}
		// Folding may change byte lengths, so the suffix is cut from the folded name.
		rest, ok := strings.CutPrefix(strings.ToLower(filepath.Base(f)), foldedBase)
		if !ok {
			continue
		}
		if isSidecar(rest) {
			out = append(out, f)
			continue
		}
		if inner, ok := strings.CutPrefix(rest, foldedExt); ok && foldedExt != "" && isSidecar(inner) {
			out = append(out, f)
		}
	}
	return out, nil
}

// listing maps folded file names in dir to their real names.
func (a *Aggregator) listing(dir string) (map[string]string, error) {
	names, err := a.fs.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	present := make(map[string]string, len(names))
	for _, n := range names {
		present[strings.ToLower(n)] = n
	}
	return present, nil
}

// lookup finds the file a dependency name refers to in dir, trying the name
// as declared and then with each binary extension.
func lookup(dir string, present map[string]string, name string) (string, bool) {
	name = filepath.Base(name)
	candidates := []string{name}
	for _, ext := range domain.BinaryExts {
		candidates = append(candidates, name+ext)
	}
	for _, c := range candidates {
		if real, ok := present[strings.ToLower(c)]; ok {
			return filepath.Join(dir, real), true
		}
	}
	return "", false
}

func isSidecar(ext string) bool {
	return slices.Contains(domain.SidecarExts, ext)
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
