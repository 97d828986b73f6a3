package lockfile

import (
	"context"

	"github.com/dxbednarczyk/mup/internal/adapters/config"
	"github.com/dxbednarczyk/mup/internal/adapters/logger"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the lockfile store Graft node.
const NodeID graft.ID = "adapter.lockfile_store"

func init() {
	graft.Register(graft.Node[ports.LockfileStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.LockfileStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(cfg.Lockfile, log), nil
		},
	})
}
