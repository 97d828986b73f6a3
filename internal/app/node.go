package app

import (
	"context"

	"github.com/dxbednarczyk/mup/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"github.com/dxbednarczyk/mup/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"github.com/dxbednarczyk/mup/internal/adapters/hangar"   //nolint:depguard // Wired in app layer
	"github.com/dxbednarczyk/mup/internal/adapters/history"  //nolint:depguard // Wired in app layer
	"github.com/dxbednarczyk/mup/internal/adapters/loader"   //nolint:depguard // Wired in app layer
	"github.com/dxbednarczyk/mup/internal/adapters/lockfile" //nolint:depguard // Wired in app layer
	"github.com/dxbednarczyk/mup/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"github.com/dxbednarczyk/mup/internal/adapters/modrinth" //nolint:depguard // Wired in app layer
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"github.com/dxbednarczyk/mup/internal/engine/resolver"
	"github.com/grindlemire/graft"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			lockfile.NodeID,
			resolver.NodeID,
			modrinth.NodeID,
			hangar.NodeID,
			loader.NodeID,
			history.NodeID,
			fs.VerifierNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.LockfileStore](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	mr, err := graft.Dep[*modrinth.Provider](ctx)
	if err != nil {
		return nil, err
	}

	hp, err := graft.Dep[*hangar.Provider](ctx)
	if err != nil {
		return nil, err
	}

	registry, err := graft.Dep[*loader.Registry](ctx)
	if err != nil {
		return nil, err
	}

	hist, err := graft.Dep[ports.HistoryStore](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.Verifier](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(
		store.Root(),
		store,
		res,
		[]ports.MetadataProvider{mr, hp},
		registry,
		hist,
		verifier,
		log,
		cfg.VerifyConcurrency,
	), nil
}
