package ports

import (
	"context"

	"github.com/dxbednarczyk/mup/internal/core/domain"
)

// ServerFetcher acquires the server runtime for a loader.
//
//go:generate go run go.uber.org/mock/mockgen -source=loader_fetcher.go -destination=mocks/mock_loader_fetcher.go -package=mocks
type ServerFetcher interface {
	// Loader returns the loader family the fetcher serves.
	Loader() domain.Loader

	// Fetch downloads the server jar or installer into dir and returns its path.
	Fetch(ctx context.Context, dir, minecraftVersion, version string) (string, error)
}
