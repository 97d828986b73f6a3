package ports

import "github.com/dxbednarczyk/mup/internal/core/domain"

// HistoryStore records add and remove operations.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type HistoryStore interface {
	// Record stores one operation.
	Record(rec domain.HistoryRecord) error

	// List returns up to limit records, newest first. A non-positive limit returns all.
	List(limit int) ([]domain.HistoryRecord, error)

	// Close releases the underlying database.
	Close() error
}
