package ports

import "github.com/dxbednarczyk/mup/internal/core/domain"

// LockfileStore persists the lockfile.
//
//go:generate go run go.uber.org/mock/mockgen -source=lockfile_store.go -destination=mocks/mock_lockfile_store.go -package=mocks
type LockfileStore interface {
	// Load reads the lockfile, creating an empty one if none exists.
	Load() (*domain.Lockfile, error)

	// Configure validates the game version and loader and overwrites the lockfile
	// with an empty, configured one.
	Configure(minecraftVersion, loader string) (*domain.Lockfile, error)

	// Add appends an entry and persists the lockfile.
	Add(lf *domain.Lockfile, entry domain.Entry) error

	// Remove deletes the entry matching id and, with removeOrphans, the dependencies
	// nothing else requires. Artifact files are deleted unless keepFile is set.
	// It returns the removed entries. The lockfile is persisted once.
	Remove(lf *domain.Lockfile, id string, keepFile, removeOrphans bool) ([]domain.Entry, error)

	// Save persists the lockfile.
	Save(lf *domain.Lockfile) error

	// Root returns the server directory that entry paths are relative to.
	Root() string
}
