package progrock

import (
	"context"

	"github.com/dxbednarczyk/mup/internal/adapters/config"
	"github.com/dxbednarczyk/mup/internal/adapters/telemetry"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"github.com/grindlemire/graft"
)

const (
	// NodeID is the unique identifier for the telemetry adapter node.
	NodeID graft.ID = "adapter.telemetry"
)

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			// Structured log consumers get no progress recording.
			if cfg.LogJSON {
				return telemetry.NewNoOp(), nil
			}
			return New(), nil
		},
	})
}
