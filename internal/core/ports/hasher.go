package ports

import "github.com/dxbednarczyk/mup/internal/core/domain"

// Hasher computes file digests.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashFile computes the digest of the file at path with the given algorithm.
	HashFile(path string, alg domain.Algorithm) (domain.Checksum, error)
}
