package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/refgraph/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/refgraph/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/refgraph/internal/adapters/inspector" //nolint:depguard // Wired in app layer
	"go.trai.ch/refgraph/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/refgraph/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/refgraph/internal/adapters/registry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/refgraph/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/refgraph/internal/core/ports"
	"go.trai.ch/refgraph/internal/engine/planner"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			config.ParserNodeID,
			fs.FileSystemNodeID,
			inspector.NodeID,
			registry.NodeID,
			watcher.NodeID,
			logger.NodeID,
			metrics.NodeID,
			planner.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	workspaces, err := graft.Dep[ports.WorkspaceLoader](ctx)
	if err != nil {
		return nil, err
	}

	parser, err := graft.Dep[ports.DescriptorParser](ctx)
	if err != nil {
		return nil, err
	}

	fsys, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}

	insp, err := graft.Dep[ports.ModuleInspector](ctx)
	if err != nil {
		return nil, err
	}

	provider, err := graft.Dep[*registry.Provider](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	m, err := graft.Dep[*metrics.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	p, err := graft.Dep[*planner.Planner](ctx)
	if err != nil {
		return nil, err
	}

	return New(workspaces, parser, fsys, insp, provider, w, log, m, p), nil
}
