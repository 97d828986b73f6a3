package history

import (
	"context"

	"github.com/dxbednarczyk/mup/internal/adapters/config"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the history store Graft node.
const NodeID graft.ID = "adapter.history"

func init() {
	graft.Register(graft.Node[ports.HistoryStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.HistoryStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(cfg.HistoryPath), nil
		},
	})
}
