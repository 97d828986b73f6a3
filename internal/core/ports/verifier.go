package ports

import "github.com/dxbednarczyk/mup/internal/core/domain"

// Verifier checks installed artifacts against the lockfile.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type Verifier interface {
	// Verify re-hashes the entry's file below root.
	Verify(root string, entry domain.Entry) domain.VerifyResult
}
