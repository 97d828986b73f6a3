package resolver

import (
	"context"

	"github.com/dxbednarczyk/mup/internal/adapters/config"             //nolint:depguard // Wired in engine wiring
	"github.com/dxbednarczyk/mup/internal/adapters/download"           //nolint:depguard // Wired in engine wiring
	"github.com/dxbednarczyk/mup/internal/adapters/lockfile"           //nolint:depguard // Wired in engine wiring
	"github.com/dxbednarczyk/mup/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"github.com/dxbednarczyk/mup/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			download.NodeID,
			lockfile.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			downloader, err := graft.Dep[ports.Downloader](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.LockfileStore](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(
				store.Root(),
				downloader,
				store,
				telemetry,
				log,
				cfg.Resolve,
			), nil
		},
	})
}
