// Package reference models the dependencies a project declares and how each
// kind resolves to an artifact on disk.
package reference

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports"
	"go.trai.ch/refgraph/internal/engine/aggregate"
	"go.trai.ch/refgraph/internal/engine/macro"
	"go.trai.ch/zerr"
)

// Reference is the contract shared by component, project and wrapped-library references.
type Reference interface {
	// Name returns the declared name.
	Name() string
	// Kind returns the variant.
	Kind() domain.ReferenceKind
	// Resolve returns the primary artifact location for key.
	Resolve(key domain.ConfigurationKey) (string, error)
	// CopyLocal reports whether the artifact is copied next to the owner's output.
	CopyLocal(key domain.ConfigurationKey) (bool, error)
	// IsSystemComponent reports whether the artifact lives in the framework's system directory.
	IsSystemComponent(key domain.ConfigurationKey) (bool, error)
	// OutputFiles returns every file that travels with the artifact.
	OutputFiles(key domain.ConfigurationKey) (*domain.OutputFileSet, error)
	// Timestamp returns the artifact's modification time, or the infinite
	// timestamp when it does not exist.
	Timestamp(key domain.ConfigurationKey) (domain.Timestamp, error)
}

// Owner is the project that declares a reference.
type Owner interface {
	Name() string
	Dir() string
	// Macros returns the resolver for the owner's configuration matching key.
	Macros(key domain.ConfigurationKey) (*macro.Resolver, error)
	// IntermediateDir returns the owner's intermediate directory for key.
	IntermediateDir(key domain.ConfigurationKey) (string, error)
}

// Target is a loaded project a project reference points at.
type Target interface {
	Name() string
	Identity() uuid.UUID
	OutputPath(key domain.ConfigurationKey) (string, error)
	OutputFiles(key domain.ConfigurationKey) (*domain.OutputFileSet, error)
}

// Projects loads the targets of project references.
type Projects interface {
	LoadTarget(path string) (Target, error)
}

// Env holds the session collaborators shared by every reference.
type Env struct {
	FS         ports.FileSystem
	Framework  domain.Framework
	Registry   aggregate.Membership
	Aggregator *aggregate.Aggregator
	Projects   Projects
	Logger     ports.Logger
	Metrics    ports.Metrics
}

// New creates the reference for decl, owned by owner.
func New(decl domain.ReferenceDecl, owner Owner, env *Env) (Reference, error) {
	b := base{decl: decl, owner: owner, env: env}
	switch decl.Kind {
	case domain.KindComponent, "":
		b.decl.Kind = domain.KindComponent
		return &Component{base: b, resolved: make(map[domain.ConfigID]string)}, nil
	case domain.KindProject:
		return &Project{base: b}, nil
	case domain.KindWrapped:
		return &Wrapped{base: b}, nil
	default:
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrDescriptorInvalid, "unknown reference kind"), "kind", string(decl.Kind)), "project", owner.Name())
	}
}

// base is the behavior shared by all variants.
type base struct {
	decl  domain.ReferenceDecl
	owner Owner
	env   *Env
}

// Name returns the declared name.
func (b *base) Name() string { return b.decl.Name }

// Kind returns the variant.
func (b *base) Kind() domain.ReferenceKind { return b.decl.Kind }

// Decl returns the declaration the reference was created from.
func (b *base) Decl() domain.ReferenceDecl { return b.decl }

func (b *base) copyLocalOr(def bool) bool {
	if b.decl.CopyLocal != nil {
		return *b.decl.CopyLocal
	}
	return def
}

func (b *base) isSystem(path string) bool {
	return b.env.Framework.IsSystemDir(filepath.Dir(path))
}

func (b *base) timestamp(path string) domain.Timestamp {
	if mt, ok := b.env.FS.ModTime(path); ok {
		return domain.At(mt)
	}
	return domain.Infinite()
}

func (b *base) expand(key domain.ConfigurationKey, text string) (string, error) {
	if text == "" {
		return "", nil
	}
	r, err := b.owner.Macros(key)
	if err != nil {
		return "", err
	}
	out, err := r.Expand(text)
	if err != nil {
		return "", b.annotate(err)
	}
	return filepath.FromSlash(out), nil
}

// annotate attaches the reference and owning project to err.
func (b *base) annotate(err error) error {
	return zerr.With(zerr.With(err, "reference", b.decl.Name), "project", b.owner.Name())
}

// simpleName strips qualifiers such as ", Version=1.0.0.0" from a declared name.
func simpleName(name string) string {
	if i := strings.IndexByte(name, ','); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}
