package registry

import (
	"context"
	"os"

	"go.trai.ch/refgraph/internal/adapters/fs"
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports"
	"go.trai.ch/zerr"
)

// Provider opens the registry query facility selected by the workspace settings.
type Provider struct {
	walker *fs.Walker
	hasher ports.Hasher
	logger ports.Logger

	// Executable is the binary started in process mode. Empty means the running executable.
	Executable string
	// Env replaces the child's environment when non-nil.
	Env []string
}

var _ ports.RegistryProvider = (*Provider)(nil)

// NewProvider creates a Provider.
func NewProvider(walker *fs.Walker, hasher ports.Hasher, logger ports.Logger) *Provider {
	return &Provider{walker: walker, hasher: hasher, logger: logger}
}

// Open returns a query for settings. In none mode it returns a nil query,
// which sessions treat as "nothing is registry-provided".
func (p *Provider) Open(ctx context.Context, settings domain.RegistrySettings) (ports.RegistryQuery, error) {
	switch settings.Mode {
	case "", domain.RegistryNone:
		return nil, nil
	case domain.RegistrySnapshot:
		idx, err := p.OpenIndex(settings)
		if err != nil {
			return nil, err
		}
		p.logger.Debug("registry snapshot loaded from " + settings.Snapshot)
		return NewIndexQuery(idx, p.hasher), nil
	case domain.RegistryProcess:
		args := ServeArgs(settings)
		if args == nil {
			return nil, zerr.Wrap(domain.ErrRegistryUnavailable, "process mode needs a registry directory or snapshot")
		}
		exe := p.Executable
		if exe == "" {
			var err error
			if exe, err = os.Executable(); err != nil {
				return nil, zerr.Wrap(domain.ErrRegistryUnavailable, "cannot locate own executable")
			}
		}
		return StartProcess(ctx, Command{Path: exe, Args: args, Env: p.Env}, p.logger)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrRegistryUnavailable, "unknown registry mode"), "mode", string(settings.Mode))
	}
}

// OpenIndex loads the snapshot named by settings, or indexes the registry directory when
// no snapshot is configured.
func (p *Provider) OpenIndex(settings domain.RegistrySettings) (*Index, error) {
	if settings.Snapshot != "" {
		return LoadSnapshot(settings.Snapshot)
	}
	if settings.Dir != "" {
		return BuildIndex(p.walker, p.hasher, settings.Dir)
	}
	return nil, zerr.Wrap(domain.ErrRegistryUnavailable, "no registry directory or snapshot configured")
}

// Hasher returns the fingerprint function shared by indexes and queries.
func (p *Provider) Hasher() ports.Hasher {
	return p.hasher
}

// ServeArgs returns the command line that makes the running binary serve settings.
// It returns nil when settings name neither a snapshot nor a directory.
func ServeArgs(settings domain.RegistrySettings) []string {
	switch {
	case settings.Snapshot != "":
		return []string{"registry", "serve", "--snapshot", settings.Snapshot}
	case settings.Dir != "":
		return []string{"registry", "serve", "--dir", settings.Dir}
	default:
		return nil
	}
}
