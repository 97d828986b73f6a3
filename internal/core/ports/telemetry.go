package ports

import (
	"context"
	"io"

	"github.com/dxbednarczyk/mup/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records progress of long-running steps such as downloads.
type Telemetry interface {
	// Record starts a new vertex and returns a context carrying it.
	Record(ctx context.Context, name string, opts ...VertexOption) (context.Context, Vertex)
	// Close flushes the recording session.
	Close() error
}

// Vertex is one recorded unit of work.
type Vertex interface {
	// Stdout returns a writer for the vertex's output stream.
	Stdout() io.Writer
	// Stderr returns a writer for the vertex's error stream.
	Stderr() io.Writer
	// Log records a message at the given level.
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex as finished, successfully when err is nil.
	Complete(err error)
	// Cached marks the vertex as satisfied without doing any work.
	Cached()
}

// VertexConfig holds configuration for a vertex.
type VertexConfig struct {
	// Internal hides the vertex from user-facing progress output.
	Internal bool
}

// VertexOption configures a vertex.
type VertexOption func(*VertexConfig)

// WithInternal marks a vertex as internal.
func WithInternal() VertexOption {
	return func(c *VertexConfig) {
		c.Internal = true
	}
}

type vertexKey struct{}

// ContextWithVertex returns a copy of ctx carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex carried by ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
