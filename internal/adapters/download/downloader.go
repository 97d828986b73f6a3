// Package download implements the checksum-verified artifact downloader.
package download

import (
	"context"
	"hash"
	"io"
	"os"
	"path/filepath"

	"github.com/dxbednarczyk/mup/internal/adapters/fs"
	"github.com/dxbednarczyk/mup/internal/adapters/httpclient"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Downloader = (*Downloader)(nil)

// Downloader streams HTTP bodies to disk while hashing them in the same pass.
type Downloader struct {
	client *httpclient.Client
}

// New creates a Downloader.
func New(client *httpclient.Client) *Downloader {
	return &Downloader{client: client}
}

// Download writes url to dest, verifying the digest when sum is set.
func (d *Downloader) Download(ctx context.Context, url, dest string, sum domain.Checksum) error {
	var hasher io.Writer = io.Discard
	digest, err := d.newDigest(sum)
	if err != nil {
		return err
	}
	if digest != nil {
		hasher = digest
	}

	if v, ok := ports.VertexFromContext(ctx); ok {
		v.Log(domain.LogLevelDebug, "downloading "+url)
	}

	resp, err := d.client.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close in defer

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrDownloadFailed, err.Error()), "path", dest)
	}

	// The body lands in a sibling temp file; dest is only replaced once it verified.
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.part")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrDownloadFailed, err.Error()), "path", dest)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath) //nolint:errcheck // Gone after a successful rename
	}()

	_, copyErr := io.Copy(io.MultiWriter(tmp, hasher), resp.Body)
	closeErr := tmp.Close()
	if copyErr != nil {
		err := zerr.With(zerr.Wrap(domain.ErrNetwork, copyErr.Error()), "url", url)
		return zerr.With(err, "path", dest)
	}
	if closeErr != nil {
		return zerr.With(zerr.Wrap(domain.ErrDownloadFailed, closeErr.Error()), "path", dest)
	}

	if digest != nil {
		actual := fs.Sum(sum.Algorithm, digest)
		if actual.Digest != sum.Digest {
			mismatch := zerr.With(zerr.Wrap(domain.ErrChecksumMismatch, "downloaded file rejected"), "path", dest)
			mismatch = zerr.With(mismatch, "expected", sum.String())
			return zerr.With(mismatch, "actual", actual.String())
		}
	}

	if err := os.Chmod(tmpPath, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrDownloadFailed, err.Error()), "path", dest)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrDownloadFailed, err.Error()), "path", dest)
	}
	return nil
}

// newDigest validates the algorithm before any request is made.
func (d *Downloader) newDigest(sum domain.Checksum) (hash.Hash, error) {
	if sum.IsZero() {
		return nil, nil //nolint:nilnil // No checksum means nothing to verify
	}
	return fs.NewHash(sum.Algorithm)
}
