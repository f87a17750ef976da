package reference

import (
	"github.com/google/uuid"
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/zerr"
)

// Project is a reference to another buildable project.
type Project struct {
	base
	target Target
}

// Path returns the referenced descriptor path.
func (p *Project) Path() string { return p.decl.Project }

// Target loads the referenced project once.
func (p *Project) Target() (Target, error) {
	if p.target != nil {
		return p.target, nil
	}
	t, err := p.env.Projects.LoadTarget(p.decl.Project)
	if err != nil {
		return nil, err
	}
	if p.decl.Identity != uuid.Nil && t.Identity() != p.decl.Identity {
		p.env.Logger.Warn("project " + p.owner.Name() + " references " + t.Name() +
			" as " + p.decl.Identity.String() + " but it identifies as " + t.Identity().String())
	}
	p.target = t
	return t, nil
}

// Resolve returns the target's output path for key. The file need not exist yet.
func (p *Project) Resolve(key domain.ConfigurationKey) (string, error) {
	t, err := p.Target()
	if err != nil {
		return "", err
	}
	out, err := t.OutputPath(key)
	if err != nil {
		return "", p.annotate(err)
	}
	p.env.Metrics.ReferenceResolved(domain.KindProject)
	return out, nil
}

// CopyLocal defaults to true.
func (p *Project) CopyLocal(domain.ConfigurationKey) (bool, error) {
	return p.copyLocalOr(true), nil
}

// IsSystemComponent implements Reference.
func (p *Project) IsSystemComponent(key domain.ConfigurationKey) (bool, error) {
	out, err := p.Resolve(key)
	if err != nil {
		return false, err
	}
	return p.isSystem(out), nil
}

// OutputFiles returns the target project's own output set. The target must
// have produced its output.
func (p *Project) OutputFiles(key domain.ConfigurationKey) (*domain.OutputFileSet, error) {
	out, err := p.Resolve(key)
	if err != nil {
		return nil, err
	}
	if !p.env.FS.Exists(out) {
		return nil, zerr.With(p.annotate(zerr.Wrap(domain.ErrMissingProjectOutput, "referenced project has not been built")), "path", out)
	}
	return p.target.OutputFiles(key)
}

// Timestamp implements Reference. An output that has not been produced yet
// reports the infinite timestamp.
func (p *Project) Timestamp(key domain.ConfigurationKey) (domain.Timestamp, error) {
	out, err := p.Resolve(key)
	if err != nil {
		return domain.Timestamp{}, err
	}
	return p.timestamp(out), nil
}
