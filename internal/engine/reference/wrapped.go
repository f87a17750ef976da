package reference

import (
	"path/filepath"

	"go.trai.ch/refgraph/internal/core/domain"
)

// Wrapped is a reference to an external library consumed through a generated wrapper.
type Wrapped struct {
	base
}

// Resolve returns the wrapper artifact: the hint path when declared, else
// Interop.<Name>.dll in the owner's intermediate directory. It need not exist yet.
func (w *Wrapped) Resolve(key domain.ConfigurationKey) (string, error) {
	hint, err := w.expand(key, w.decl.HintPath)
	if err != nil {
		return "", err
	}
	if hint != "" {
		if !filepath.IsAbs(hint) {
			hint = filepath.Join(w.owner.Dir(), hint)
		}
		w.env.Metrics.ReferenceResolved(domain.KindWrapped)
		return filepath.Clean(hint), nil
	}

	intDir, err := w.owner.IntermediateDir(key)
	if err != nil {
		return "", w.annotate(err)
	}
	w.env.Metrics.ReferenceResolved(domain.KindWrapped)
	return filepath.Join(intDir, domain.WrapperPrefix+simpleName(w.decl.Name)+domain.DefaultTargetExt), nil
}

// CopyLocal defaults to true.
func (w *Wrapped) CopyLocal(domain.ConfigurationKey) (bool, error) {
	return w.copyLocalOr(true), nil
}

// IsSystemComponent implements Reference.
func (w *Wrapped) IsSystemComponent(key domain.ConfigurationKey) (bool, error) {
	p, err := w.Resolve(key)
	if err != nil {
		return false, err
	}
	return w.isSystem(p), nil
}

// OutputFiles aggregates the wrapper like a component.
func (w *Wrapped) OutputFiles(key domain.ConfigurationKey) (*domain.OutputFileSet, error) {
	p, err := w.Resolve(key)
	if err != nil {
		return nil, err
	}
	return w.env.Aggregator.Aggregate(p, w.isSystem(p))
}

// Timestamp implements Reference.
func (w *Wrapped) Timestamp(key domain.ConfigurationKey) (domain.Timestamp, error) {
	p, err := w.Resolve(key)
	if err != nil {
		return domain.Timestamp{}, err
	}
	return w.timestamp(p), nil
}
