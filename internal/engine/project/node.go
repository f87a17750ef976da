package project

import (
	"path/filepath"

	"github.com/google/uuid"
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/engine/macro"
	"go.trai.ch/refgraph/internal/engine/reference"
	"go.trai.ch/zerr"
)

// Configuration is a declared build configuration with its directories expanded.
type Configuration struct {
	Key             domain.ConfigurationKey
	OutputDir       string
	IntermediateDir string
	TargetName      string
	TargetExt       string
	macros          *macro.Resolver
}

// OutputPath returns the primary build output of the configuration.
func (c *Configuration) OutputPath() string {
	return filepath.Join(c.OutputDir, c.TargetName+c.TargetExt)
}

// Node is one loaded project.
type Node struct {
	doc        *domain.ProjectDocument
	configs    []*Configuration
	byID       map[domain.ConfigID]*Configuration
	references []reference.Reference
	env        *reference.Env
	outputs    map[domain.ConfigID]*domain.OutputFileSet
}

var (
	_ reference.Owner  = (*Node)(nil)
	_ reference.Target = (*Node)(nil)
)

func newNode(doc *domain.ProjectDocument, solution *domain.SolutionDocument, env *reference.Env) (*Node, error) {
	if len(doc.Configurations) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoConfigurations, "cannot load project"), "project", doc.Path)
	}

	n := &Node{
		doc:     doc,
		byID:    make(map[domain.ConfigID]*Configuration, len(doc.Configurations)),
		env:     env,
		outputs: make(map[domain.ConfigID]*domain.OutputFileSet),
	}

	projectScope := macro.ProjectScope(doc)
	solutionScope := macro.SolutionScope(solution)
	for _, decl := range doc.Configurations {
		cfg, err := n.configure(decl, projectScope, solutionScope)
		if err != nil {
			return nil, err
		}
		if _, dup := n.byID[cfg.Key.ID()]; dup {
			continue
		}
		n.configs = append(n.configs, cfg)
		n.byID[cfg.Key.ID()] = cfg
	}

	for _, decl := range doc.References {
		r, err := reference.New(decl, n, env)
		if err != nil {
			return nil, err
		}
		n.references = append(n.references, r)
	}
	return n, nil
}

// configure expands the declared directories with only the configuration name
// and platform available, then builds the full macro chain for the configuration.
func (n *Node) configure(decl domain.ConfigurationDecl, projectScope, solutionScope macro.Scope) (*Configuration, error) {
	key := decl.Key()
	pre := macro.New(macro.ConfigScope(macro.ConfigValues{Key: key}), projectScope, solutionScope)

	outDir, err := n.expandDir(pre, firstOf(decl.OutputDir, "bin/$(ConfigurationName)"))
	if err != nil {
		return nil, zerr.With(err, "configuration", key.String())
	}
	intDir, err := n.expandDir(pre, firstOf(decl.IntermediateDir, "obj/$(ConfigurationName)"))
	if err != nil {
		return nil, zerr.With(err, "configuration", key.String())
	}

	cfg := &Configuration{
		Key:             key,
		OutputDir:       outDir,
		IntermediateDir: intDir,
		TargetName:      firstOf(decl.TargetName, n.doc.AssemblyName, n.doc.Name),
		TargetExt:       firstOf(n.doc.TargetExt, domain.DefaultTargetExt),
	}
	cfg.macros = macro.New(macro.ConfigScope(macro.ConfigValues{
		Key:        key,
		OutDir:     cfg.OutputDir,
		IntDir:     cfg.IntermediateDir,
		TargetName: cfg.TargetName,
		TargetExt:  cfg.TargetExt,
	}), projectScope, solutionScope)
	return cfg, nil
}

func (n *Node) expandDir(r *macro.Resolver, dir string) (string, error) {
	out, err := r.Expand(dir)
	if err != nil {
		return "", zerr.With(err, "project", n.Name())
	}
	out = filepath.FromSlash(out)
	if !filepath.IsAbs(out) {
		out = filepath.Join(n.Dir(), out)
	}
	return filepath.Clean(out), nil
}

// Name returns the project name.
func (n *Node) Name() string { return n.doc.Name }

// Path returns the absolute descriptor path.
func (n *Node) Path() string { return n.doc.Path }

// Dir returns the directory holding the descriptor.
func (n *Node) Dir() string { return filepath.Dir(n.doc.Path) }

// Identity returns the project's identity token.
func (n *Node) Identity() uuid.UUID { return n.doc.Identity }

// Document returns the parsed descriptor.
func (n *Node) Document() *domain.ProjectDocument { return n.doc }

// References returns the declared references in declaration order.
func (n *Node) References() []reference.Reference { return n.references }

// Configurations returns the declared configurations in declaration order.
func (n *Node) Configurations() []*Configuration { return n.configs }

// Configuration returns the configuration matching key: the exact key, else
// the first with the same name, else the first declared.
func (n *Node) Configuration(key domain.ConfigurationKey) *Configuration {
	if c, ok := n.byID[key.ID()]; ok {
		return c
	}
	for _, c := range n.configs {
		if c.Key.SameName(key) {
			return c
		}
	}
	n.env.Logger.Debug("project " + n.Name() + " has no configuration " + key.String() + ", using " + n.configs[0].Key.String())
	return n.configs[0]
}

// Macros implements reference.Owner.
func (n *Node) Macros(key domain.ConfigurationKey) (*macro.Resolver, error) {
	return n.Configuration(key).macros, nil
}

// IntermediateDir implements reference.Owner.
func (n *Node) IntermediateDir(key domain.ConfigurationKey) (string, error) {
	return n.Configuration(key).IntermediateDir, nil
}

// OutputPath returns the primary output for key. The file need not exist.
func (n *Node) OutputPath(key domain.ConfigurationKey) (string, error) {
	return n.Configuration(key).OutputPath(), nil
}

// OutputFiles returns what a consumer of this project copies: the primary
// output with its related files, plus the files of every copy-local reference.
func (n *Node) OutputFiles(key domain.ConfigurationKey) (*domain.OutputFileSet, error) {
	id := n.Configuration(key).Key.ID()
	if set, ok := n.outputs[id]; ok {
		return set, nil
	}

	set := domain.NewOutputFileSet()
	related, err := n.env.Aggregator.Related(n.Configuration(key).OutputPath())
	if err != nil {
		return nil, err
	}
	for _, f := range related {
		set.Add(f, filepath.Base(f))
	}

	copied, err := n.CopyLocalFiles(key)
	if err != nil {
		return nil, err
	}
	set.Merge(copied)

	n.outputs[id] = set
	return set, nil
}

// CopyLocalFiles returns the files of every copy-local reference for key.
func (n *Node) CopyLocalFiles(key domain.ConfigurationKey) (*domain.OutputFileSet, error) {
	set := domain.NewOutputFileSet()
	for _, r := range n.references {
		copyLocal, err := r.CopyLocal(key)
		if err != nil {
			return nil, err
		}
		if !copyLocal {
			continue
		}
		files, err := r.OutputFiles(key)
		if err != nil {
			return nil, err
		}
		set.Merge(files)
	}
	return set, nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
