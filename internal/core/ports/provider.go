package ports

import (
	"context"

	"github.com/dxbednarczyk/mup/internal/core/domain"
)

// MetadataProvider looks projects up in a remote registry.
//
//go:generate go run go.uber.org/mock/mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks
type MetadataProvider interface {
	// Name returns the provider tag used in remote sources (e.g., "modrinth").
	Name() string

	// Resolve returns the version of projectID matched by selector.
	// The "latest" selector returns the newest version matching the loader and
	// game version in cfg, in the provider's own ordering.
	Resolve(ctx context.Context, projectID, selector string, cfg domain.LoaderConfig) (*domain.VersionMetadata, error)
}
