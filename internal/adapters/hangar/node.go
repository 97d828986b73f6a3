package hangar

import (
	"context"

	"github.com/dxbednarczyk/mup/internal/adapters/config"
	"github.com/dxbednarczyk/mup/internal/adapters/httpclient"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the Hangar provider Graft node.
const NodeID graft.ID = "adapter.hangar"

func init() {
	graft.Register(graft.Node[*Provider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, httpclient.NodeID},
		Run: func(ctx context.Context) (*Provider, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			client, err := graft.Dep[*httpclient.Client](ctx)
			if err != nil {
				return nil, err
			}
			return New(client, cfg.Hangar.BaseURL), nil
		},
	})
}
