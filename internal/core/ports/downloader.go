package ports

import (
	"context"

	"github.com/dxbednarczyk/mup/internal/core/domain"
)

// Downloader streams remote artifacts to disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=downloader.go -destination=mocks/mock_downloader.go -package=mocks
type Downloader interface {
	// Download writes the body of url to dest while hashing it with sum's algorithm.
	// On a digest mismatch the file is removed and ErrChecksumMismatch is returned.
	// A zero sum skips verification.
	Download(ctx context.Context, url, dest string, sum domain.Checksum) error
}
