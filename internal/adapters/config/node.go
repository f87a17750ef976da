package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/refgraph/internal/adapters/logger"
	"go.trai.ch/refgraph/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the workspace loader Graft node.
	NodeID graft.ID = "adapter.workspace_loader"
	// ParserNodeID is the unique identifier for the descriptor parser Graft node.
	ParserNodeID graft.ID = "adapter.descriptor_parser"
)

func init() {
	graft.Register(graft.Node[ports.WorkspaceLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.WorkspaceLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[ports.DescriptorParser]{
		ID:        ParserNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DescriptorParser, error) {
			return NewParser(), nil
		},
	})
}
