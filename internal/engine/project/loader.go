// Package project loads project descriptors into nodes, caching them per path
// and rejecting circular project references.
package project

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports"
	"go.trai.ch/refgraph/internal/engine/reference"
	"go.trai.ch/zerr"
)

// frame is one in-flight load.
type frame struct {
	key  domain.PathKey
	path string
	name string
}

func (f frame) label() string {
	if f.name != "" {
		return f.name
	}
	return filepath.Base(f.path)
}

// Loader is the session's project load cache. It is not safe for concurrent use.
type Loader struct {
	parser   ports.DescriptorParser
	solution *domain.SolutionDocument
	env      *reference.Env
	metrics  ports.Metrics

	nodes     map[domain.PathKey]*Node
	documents map[domain.PathKey]*domain.ProjectDocument
	order     []*Node
	stack     []frame
}

var _ reference.Projects = (*Loader)(nil)

// NewLoader creates a Loader. The loader registers itself as env.Projects so
// that project references load their targets through it.
func NewLoader(parser ports.DescriptorParser, solution *domain.SolutionDocument, env *reference.Env) *Loader {
	metrics := env.Metrics
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	l := &Loader{
		parser:    parser,
		solution:  solution,
		env:       env,
		metrics:   metrics,
		nodes:     make(map[domain.PathKey]*Node),
		documents: make(map[domain.PathKey]*domain.ProjectDocument),
	}
	env.Projects = l
	return l
}

// Load returns the node for the descriptor at path, loading it and every
// project it references on first use.
func (l *Loader) Load(path string) (*Node, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid project path"), "path", path)
	}
	key := domain.NewPathKey(abs)

	if n, ok := l.nodes[key]; ok {
		l.metrics.ProjectLoad(true)
		return n, nil
	}
	if i := l.inFlight(key); i >= 0 {
		return nil, l.circular(abs, i)
	}
	l.metrics.ProjectLoad(false)

	l.stack = append(l.stack, frame{key: key, path: abs})
	defer func() { l.stack = l.stack[:len(l.stack)-1] }()

	doc, err := l.Document(abs)
	if err != nil {
		return nil, err
	}
	l.stack[len(l.stack)-1].name = doc.Name

	n, err := newNode(doc, l.solution, l.env)
	if err != nil {
		return nil, err
	}
	for _, r := range n.references {
		if pr, ok := r.(*reference.Project); ok {
			if _, err := pr.Target(); err != nil {
				return nil, err
			}
		}
	}

	l.nodes[key] = n
	l.order = append(l.order, n)
	return n, nil
}

// LoadTarget implements reference.Projects.
func (l *Loader) LoadTarget(path string) (reference.Target, error) {
	n, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Document returns the parsed descriptor at path, parsing it at most once.
func (l *Loader) Document(path string) (*domain.ProjectDocument, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid project path"), "path", path)
	}
	key := domain.NewPathKey(abs)
	if doc, ok := l.documents[key]; ok {
		return doc, nil
	}
	doc, err := l.parser.Parse(abs)
	if err != nil {
		return nil, err
	}
	l.documents[key] = doc
	return doc, nil
}

// Identity returns the identity token of the project at path without building its node.
func (l *Loader) Identity(path string) (uuid.UUID, error) {
	doc, err := l.Document(path)
	if err != nil {
		return uuid.Nil, err
	}
	return doc.Identity, nil
}

// Nodes returns every loaded project in completion order, dependencies first.
func (l *Loader) Nodes() []*Node {
	return l.order
}

// Loading reports whether a load is in progress.
func (l *Loader) Loading() bool {
	return len(l.stack) > 0
}

func (l *Loader) inFlight(key domain.PathKey) int {
	for i, f := range l.stack {
		if f.key == key {
			return i
		}
	}
	return -1
}

// circular builds the error for a re-entrant load of path, which is on the stack at index at.
func (l *Loader) circular(path string, at int) error {
	chain := make([]string, 0, len(l.stack)-at+1)
	for _, f := range l.stack[at:] {
		chain = append(chain, f.label())
	}
	chain = append(chain, l.stack[at].label())

	err := zerr.Wrap(domain.ErrCircularReference, "project is already being loaded")
	err = zerr.With(err, "path", path)
	err = zerr.With(err, "referenced_by", l.stack[len(l.stack)-1].label())
	return zerr.With(err, "cycle", strings.Join(chain, " -> "))
}
