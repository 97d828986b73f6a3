package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
)

var _ ports.Verifier = (*Verifier)(nil)

// Verifier re-hashes installed files and compares them against their lockfile checksum.
type Verifier struct {
	hasher ports.Hasher
}

// NewVerifier creates a new Verifier.
func NewVerifier(hasher ports.Hasher) *Verifier {
	return &Verifier{hasher: hasher}
}

// Verify checks the entry's file below root.
func (v *Verifier) Verify(root string, entry domain.Entry) domain.VerifyResult {
	res := domain.VerifyResult{Slug: entry.Slug, Path: entry.Path}
	path := filepath.Join(root, filepath.FromSlash(entry.Path))

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			res.Status = domain.VerifyMissing
			return res
		}
		res.Status = domain.VerifyError
		res.Err = err
		return res
	}

	if entry.Checksum.IsZero() {
		res.Status = domain.VerifyUnchecked
		return res
	}

	actual, err := v.hasher.HashFile(path, entry.Checksum.Algorithm)
	if err != nil {
		res.Status = domain.VerifyError
		res.Err = err
		return res
	}

	res.Actual = actual
	if actual.Digest != entry.Checksum.Digest {
		res.Status = domain.VerifyMismatch
		return res
	}

	res.Status = domain.VerifyOK
	return res
}
