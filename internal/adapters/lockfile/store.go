// Package lockfile implements the JSON lockfile store.
package lockfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LockfileStore = (*Store)(nil)

// Store implements ports.LockfileStore using a JSON file.
// Entry paths are resolved against the directory containing the lockfile.
type Store struct {
	path   string
	root   string
	logger ports.Logger
}

// NewStore creates a store backed by the file at the given path.
func NewStore(path string, logger ports.Logger) *Store {
	clean := filepath.Clean(path)
	return &Store{
		path:   clean,
		root:   filepath.Dir(clean),
		logger: logger,
	}
}

// Path returns the lockfile path.
func (s *Store) Path() string {
	return s.path
}

// Root returns the server directory entry paths are relative to.
func (s *Store) Root() string {
	return s.root
}

// Load reads the lockfile. If the file does not exist, an empty lockfile is
// written and returned.
func (s *Store) Load() (*domain.Lockfile, error) {
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrLockfileReadFailed, err.Error()), "path", s.path)
		}
		lf := domain.NewLockfile()
		if err := s.Save(lf); err != nil {
			return nil, err
		}
		return lf, nil
	}

	var lf domain.Lockfile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCorruptLockfile, err.Error()), "path", s.path)
	}
	lf.Normalize()

	return &lf, nil
}

// Configure overwrites the lockfile with an empty one configured for the loader and game version.
func (s *Store) Configure(minecraftVersion, loader string) (*domain.Lockfile, error) {
	cfg, err := domain.NewLoaderConfig(minecraftVersion, loader)
	if err != nil {
		return nil, err
	}

	lf := domain.NewConfiguredLockfile(cfg)
	if err := s.Save(lf); err != nil {
		return nil, err
	}
	return lf, nil
}

// Add appends the entry and persists the lockfile.
func (s *Store) Add(lf *domain.Lockfile, entry domain.Entry) error {
	if err := lf.Add(entry); err != nil {
		return err
	}
	return s.Save(lf)
}

// Remove removes the entry matching id, and its orphans when requested.
// A lockfile without the entry is left untouched on disk.
func (s *Store) Remove(lf *domain.Lockfile, id string, keepFile, removeOrphans bool) ([]domain.Entry, error) {
	plan, err := lf.PlanRemoval(id, removeOrphans)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(plan))
	var removeErr error
	for _, e := range plan {
		if !keepFile {
			if err := s.removeFile(e); err != nil {
				removeErr = err
				break
			}
		}
		removed = append(removed, e.Slug)
	}

	lf.Delete(removed...)
	if err := s.Save(lf); err != nil {
		return nil, err
	}
	if removeErr != nil {
		return plan[:len(removed)], removeErr
	}

	return plan, nil
}

func (s *Store) removeFile(e domain.Entry) error {
	path := filepath.Join(s.root, filepath.FromSlash(e.Path))
	err := os.Remove(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn(fmt.Sprintf("file for %s is already gone: %s", e.Slug, e.Path))
		return nil
	}
	removeErr := zerr.With(zerr.Wrap(domain.ErrFileRemoveFailed, err.Error()), "project", e.Slug)
	return zerr.With(removeErr, "path", path)
}

// Save re-serializes the whole lockfile and replaces the file on disk.
func (s *Store) Save(lf *domain.Lockfile) error {
	lf.Normalize()

	data, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLockfileWriteFailed, err.Error()), "path", s.path)
	}
	data = append(data, '\n')

	if err := atomicWriteFile(s.path, data); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLockfileWriteFailed, err.Error()), "path", s.path)
	}
	return nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".mup-lock-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
