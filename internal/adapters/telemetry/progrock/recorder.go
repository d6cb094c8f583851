// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"io"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/starmap/internal/core/ports"
)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
type Recorder struct {
	w       progrock.Writer
	rec     *progrock.Recorder
	printer *Printer
}

// New creates a Recorder whose progress lines are discarded until
// ReportTo is called.
func New() *Recorder {
	return NewRecorder(NewPrinter(io.Discard))
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	printer, _ := w.(*Printer)
	return &Recorder{
		w:       w,
		rec:     progrock.NewRecorder(w),
		printer: printer,
	}
}

// ReportTo sends progress lines to w. It does nothing when the recorder
// writes to something other than a Printer.
func (r *Recorder) ReportTo(w io.Writer) {
	if r.printer != nil {
		r.printer.SetOutput(w)
	}
}

// Record starts recording a new vertex. Vertices are identified by the
// digest of their name, so repeated fetches of one URL share a vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := r.rec.Vertex(digest.FromString(name), name)
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
