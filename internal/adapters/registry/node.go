package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/refgraph/internal/adapters/fs"
	"go.trai.ch/refgraph/internal/adapters/logger"
	"go.trai.ch/refgraph/internal/core/ports"
)

// NodeID is the unique identifier for the registry provider Graft node.
const NodeID graft.ID = "adapter.registry"

func init() {
	graft.Register(graft.Node[*Provider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, fs.HasherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Provider, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvider(walker, hasher, log), nil
		},
	})
}
