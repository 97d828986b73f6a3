// Package loader fetches server runtimes (Paper, Fabric, Forge and NeoForge) into the server directory.
package loader

import (
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry maps each loader to its fetcher.
type Registry struct {
	fetchers map[domain.Loader]ports.ServerFetcher
}

// NewRegistry creates a Registry. A later fetcher for the same loader replaces an earlier one.
func NewRegistry(fetchers ...ports.ServerFetcher) *Registry {
	r := &Registry{fetchers: make(map[domain.Loader]ports.ServerFetcher, len(fetchers))}
	for _, f := range fetchers {
		r.fetchers[f.Loader()] = f
	}
	return r
}

// Get returns the fetcher for the named loader.
func (r *Registry) Get(name string) (ports.ServerFetcher, error) {
	l, err := domain.ParseLoader(name)
	if err != nil {
		return nil, err
	}
	f, ok := r.fetchers[l]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfiguration, "loader is currently unsupported"), "loader", name)
	}
	return f, nil
}
