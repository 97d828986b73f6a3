package fs

import (
	"context"

	"github.com/dxbednarczyk/mup/internal/core/ports"
	"github.com/grindlemire/graft"
)

const (
	// HasherNodeID is the unique identifier for the file hasher node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// VerifierNodeID is the unique identifier for the artifact verifier node.
	VerifierNodeID graft.ID = "adapter.fs.verifier"
)

func init() {
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.Verifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{HasherNodeID},
		Run: func(ctx context.Context) (ports.Verifier, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewVerifier(hasher), nil
		},
	})
}
