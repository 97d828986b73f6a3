package httpclient

import (
	"context"

	"github.com/dxbednarczyk/mup/internal/adapters/config"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the HTTP client Graft node.
const NodeID graft.ID = "adapter.httpclient"

func init() {
	graft.Register(graft.Node[*Client]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (*Client, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.UserAgent, cfg.HTTPTimeout), nil
		},
	})
}
