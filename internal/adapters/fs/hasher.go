// Package fs implements file hashing and verification of installed artifacts.
package fs

import (
	"crypto/sha1" //nolint:gosec // Registries still publish SHA-1 digests
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// NewHash returns a fresh digest accumulator for alg.
func NewHash(alg domain.Algorithm) (hash.Hash, error) {
	switch alg {
	case domain.AlgorithmSHA1:
		return sha1.New(), nil //nolint:gosec // See import
	case domain.AlgorithmSHA256:
		return sha256.New(), nil
	case domain.AlgorithmSHA512:
		return sha512.New(), nil
	case domain.AlgorithmXXH64:
		return xxhash.New(), nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedChecksum, "cannot hash"), "algorithm", string(alg))
	}
}

// Sum renders the accumulated digest as a checksum. Each byte contributes two hex characters.
func Sum(alg domain.Algorithm, h hash.Hash) domain.Checksum {
	return domain.NewChecksum(alg, hex.EncodeToString(h.Sum(nil)))
}

// Hasher computes file digests.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashFile computes the digest of a file's content.
func (h *Hasher) HashFile(path string, alg domain.Algorithm) (domain.Checksum, error) {
	digest, err := NewHash(alg)
	if err != nil {
		return domain.Checksum{}, err
	}

	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return domain.Checksum{}, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	if _, err := io.Copy(digest, f); err != nil {
		return domain.Checksum{}, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return Sum(alg, digest), nil
}
