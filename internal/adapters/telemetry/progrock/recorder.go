// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"

	"github.com/dxbednarczyk/mup/internal/core/ports"
	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry using the vito/progrock library.
// Each installed project is recorded as one vertex.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a new Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts recording a new vertex named after the unit of work.
func (r *Recorder) Record(ctx context.Context, name string, opts ...ports.VertexOption) (context.Context, ports.Vertex) {
	cfg := ports.VertexConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var vopts []progrock.VertexOpt
	if cfg.Internal {
		vopts = append(vopts, progrock.Internal())
	}

	v := r.rec.Vertex(digest.FromString(name), name, vopts...)
	vertex := &Vertex{vertex: v}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
