package ports

import "go.trai.ch/refgraph/internal/core/domain"

// WorkspaceLoader defines the interface for loading the workspace settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type WorkspaceLoader interface {
	// Load finds the workspace file by walking up from startDir and loads it.
	// Without a workspace file it returns defaults rooted at startDir.
	Load(startDir string) (*domain.Workspace, error)
}
