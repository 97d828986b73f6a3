package config

import (
	"context"

	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"github.com/grindlemire/graft"
)

// LoaderNodeID is the unique identifier for the config loader Graft node.
const LoaderNodeID graft.ID = "adapter.config_loader"

// NodeID is the unique identifier for the resolved configuration Graft node.
const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigLoader, error) {
			return NewLoader(), nil
		},
	})

	graft.Register(graft.Node[*domain.Config]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{LoaderNodeID},
		Run: func(ctx context.Context) (*domain.Config, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			return loader.Load(".")
		},
	})
}
