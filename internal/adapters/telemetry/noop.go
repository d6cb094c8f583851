// Package telemetry records the progress of tile fetches. The progrock
// subpackage records to a tape; NoOp discards everything.
package telemetry

import (
	"context"

	"go.trai.ch/starmap/internal/core/ports"
)

// NoOp is a ports.Telemetry that records nothing.
type NoOp struct{}

// NewNoOp creates a new NoOp recorder.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns ctx carrying a vertex that ignores every call.
func (*NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	v := NoOpVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (*NoOp) Close() error { return nil }

// NoOpVertex is a ports.Vertex that ignores every call.
type NoOpVertex struct{}

// Log does nothing.
func (NoOpVertex) Log(string) {}

// Complete does nothing.
func (NoOpVertex) Complete(error) {}

// Cached does nothing.
func (NoOpVertex) Cached() {}
