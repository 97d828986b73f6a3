package domain

import "time"

// Operation is the kind of lockfile mutation a history record describes.
type Operation string

const (
	// OperationInit records a server initialization.
	OperationInit Operation = "init"
	// OperationAdd records a project add.
	OperationAdd Operation = "add"
	// OperationRemove records a project removal.
	OperationRemove Operation = "remove"
)

// HistoryRecord is one entry of the operation log.
type HistoryRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Operation Operation `json:"operation"`
	Target    string    `json:"target"`
	Slugs     []string  `json:"slugs"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}
