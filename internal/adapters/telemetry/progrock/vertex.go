package progrock

import (
	"fmt"
	"io"

	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports"
	"github.com/vito/progrock"
)

var _ ports.Vertex = (*Vertex)(nil)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Stdout returns a writer to capture standard output stream.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr returns a writer to capture error output stream.
func (v *Vertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// Log records a message on the vertex. Warnings and errors go to the error stream.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	w := v.vertex.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.vertex.Stderr()
	}
	_, _ = fmt.Fprintf(w, "[%s] %s\n", level.String(), msg)
}

// Complete marks the vertex as finished (successfully or with an error).
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Cached marks the vertex as already satisfied.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
