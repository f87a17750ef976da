package reference

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/zerr"
)

// Component is a reference to a prebuilt binary.
type Component struct {
	base
	resolved map[domain.ConfigID]string
}

// Resolve searches, in order: an absolute hint path, the framework system
// directory, the folder-key directory and the named search folders, then the
// hint path relative to the owning project. A previously resolved path is
// reused while its file exists.
func (c *Component) Resolve(key domain.ConfigurationKey) (string, error) {
	id := key.ID()
	if p, ok := c.resolved[id]; ok && c.env.FS.Exists(p) {
		return p, nil
	}

	p, err := c.search(key)
	if err != nil {
		return "", err
	}
	c.resolved[id] = p
	c.env.Metrics.ReferenceResolved(domain.KindComponent)
	return p, nil
}

func (c *Component) search(key domain.ConfigurationKey) (string, error) {
	hint, err := c.expand(key, c.decl.HintPath)
	if err != nil {
		return "", err
	}

	if hint != "" && filepath.IsAbs(hint) {
		return filepath.Clean(hint), nil
	}

	names := c.fileNames(hint)

	if dir := c.env.Framework.SystemDir; dir != "" {
		if p, ok := c.probe(dir, names); ok {
			return p, nil
		}
	}

	if dir, ok := c.env.Framework.FolderKeyPath(c.decl.FolderKey); ok {
		if p, ok := c.probe(dir, names); ok {
			return p, nil
		}
	}
	for _, folder := range c.env.Framework.SearchFolders {
		if p, ok := c.probe(folder.Path, names); ok {
			return p, nil
		}
	}

	if hint != "" {
		return filepath.Join(c.owner.Dir(), hint), nil
	}

	return "", c.annotate(zerr.Wrap(domain.ErrUnresolvedReference, "component not found in any search location"))
}

// fileNames lists the file names the component may have on disk.
func (c *Component) fileNames(hint string) []string {
	if hint != "" {
		return []string{filepath.Base(hint)}
	}
	name := simpleName(c.decl.Name)
	if slices.Contains(domain.BinaryExts, strings.ToLower(filepath.Ext(name))) {
		return []string{name}
	}
	names := make([]string, 0, len(domain.BinaryExts))
	for _, ext := range domain.BinaryExts {
		names = append(names, name+ext)
	}
	return names
}

func (c *Component) probe(dir string, names []string) (string, bool) {
	for _, n := range names {
		p := filepath.Join(dir, n)
		if c.env.FS.Exists(p) {
			return p, true
		}
	}
	return "", false
}

// CopyLocal returns the declared flag, or copies the component unless the
// framework or the shared registry already provides it.
func (c *Component) CopyLocal(key domain.ConfigurationKey) (bool, error) {
	if c.decl.CopyLocal != nil {
		return *c.decl.CopyLocal, nil
	}
	p, err := c.Resolve(key)
	if err != nil {
		return false, err
	}
	return !c.isSystem(p) && !c.env.Registry.Contains(p), nil
}

// IsSystemComponent implements Reference.
func (c *Component) IsSystemComponent(key domain.ConfigurationKey) (bool, error) {
	p, err := c.Resolve(key)
	if err != nil {
		return false, err
	}
	return c.isSystem(p), nil
}

// OutputFiles aggregates the component's closure and sidecar files.
func (c *Component) OutputFiles(key domain.ConfigurationKey) (*domain.OutputFileSet, error) {
	p, err := c.Resolve(key)
	if err != nil {
		return nil, err
	}
	return c.env.Aggregator.Aggregate(p, c.isSystem(p))
}

// Timestamp implements Reference.
func (c *Component) Timestamp(key domain.ConfigurationKey) (domain.Timestamp, error) {
	p, err := c.Resolve(key)
	if err != nil {
		return domain.Timestamp{}, err
	}
	return c.timestamp(p), nil
}
