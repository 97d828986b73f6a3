// Package history keeps a log of lockfile mutations in a bbolt database.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"go.etcd.io/bbolt"
	"go.trai.ch/zerr"
)

const (
	bucketHistory = "history"

	// keyLayout is fixed width so that keys sort chronologically.
	keyLayout = "2006-01-02T15:04:05.000000000Z"

	openTimeout = time.Second
)

var _ ports.HistoryStore = (*Store)(nil)

// Store is a bbolt-backed ports.HistoryStore.
// The database is opened on first use, so commands that never record or list
// history do not create it.
type Store struct {
	path string

	mu sync.Mutex
	db *bbolt.DB
}

// NewStore creates a Store for the database at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) open() (*bbolt.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrHistoryOpenFailed, err.Error()), "path", s.path)
	}

	db, err := bbolt.Open(s.path, domain.PrivateFilePerm, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrHistoryOpenFailed, err.Error()), "path", s.path)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketHistory))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(domain.ErrHistoryOpenFailed, err.Error()), "path", s.path)
	}

	s.db = db
	return db, nil
}

// Record stores rec under its timestamp. A zero timestamp is replaced with the current time.
func (s *Store) Record(rec domain.HistoryRecord) error {
	db, err := s.open()
	if err != nil {
		return err
	}

	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	rec.Timestamp = rec.Timestamp.UTC()
	if rec.Slugs == nil {
		rec.Slugs = []string{}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return zerr.Wrap(domain.ErrHistoryWriteFailed, err.Error())
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketHistory))
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}

		// The sequence suffix keeps records with the same timestamp apart.
		key := []byte(fmt.Sprintf("%s-%016d", rec.Timestamp.Format(keyLayout), seq))
		return bucket.Put(key, data)
	})
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrHistoryWriteFailed, err.Error()), "path", s.path)
	}
	return nil
}

// List returns up to limit records, newest first. A non-positive limit returns all of them.
// Records that fail to decode are skipped.
func (s *Store) List(limit int) ([]domain.HistoryRecord, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}

	records := []domain.HistoryRecord{}
	err = db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket([]byte(bucketHistory)).Cursor()
		for k, v := cursor.Last(); k != nil && (limit <= 0 || len(records) < limit); k, v = cursor.Prev() {
			var rec domain.HistoryRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				continue
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrHistoryReadFailed, err.Error()), "path", s.path)
	}
	return records, nil
}

// Close closes the database if it was opened.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
