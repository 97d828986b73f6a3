package loader

import (
	"context"

	"github.com/dxbednarczyk/mup/internal/adapters/download"
	"github.com/dxbednarczyk/mup/internal/adapters/httpclient"
	"github.com/dxbednarczyk/mup/internal/adapters/logger"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the loader registry Graft node.
const NodeID graft.ID = "adapter.loader_registry"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{httpclient.NodeID, download.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Registry, error) {
			client, err := graft.Dep[*httpclient.Client](ctx)
			if err != nil {
				return nil, err
			}
			downloader, err := graft.Dep[ports.Downloader](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewRegistry(
				NewPaper(client, downloader, DefaultPaperURL),
				NewFabric(client, downloader, DefaultFabricURL),
				NewForge(client, downloader, log, DefaultForgePromosURL, DefaultForgeMavenURL),
				NewNeoForge(client, downloader, log, DefaultNeoForgeAPIURL, DefaultNeoForgeMavenURL),
			), nil
		},
	})
}
