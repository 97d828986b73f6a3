package download

import (
	"context"

	"github.com/dxbednarczyk/mup/internal/adapters/httpclient"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the downloader Graft node.
const NodeID graft.ID = "adapter.download"

func init() {
	graft.Register(graft.Node[ports.Downloader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{httpclient.NodeID},
		Run: func(ctx context.Context) (ports.Downloader, error) {
			client, err := graft.Dep[*httpclient.Client](ctx)
			if err != nil {
				return nil, err
			}
			return New(client), nil
		},
	})
}
