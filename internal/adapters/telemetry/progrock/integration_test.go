package progrock_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/starmap/internal/adapters/telemetry/progrock"
	"go.trai.ch/starmap/internal/core/ports"
)

func TestRecorder_Integration(t *testing.T) {
	recorder := progrock.New()
	var buf bytes.Buffer
	recorder.ReportTo(&buf)

	ctx, vertex := recorder.Record(context.Background(), "https://travellermap.com/api/tile?x=0")
	got, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, got)
	vertex.Log("fetched 1024 bytes (png)")
	vertex.Complete(nil)

	_, cached := recorder.Record(context.Background(), "https://travellermap.com/api/tile?x=1")
	cached.Cached()
	cached.Complete(nil)

	_, failed := recorder.Record(context.Background(), "https://travellermap.com/api/tile?x=2")
	failed.Complete(errors.New("503 Service Unavailable"))

	assert.NoError(t, recorder.Close())

	out := buf.String()
	assert.Contains(t, out, "https://travellermap.com/api/tile?x=0: fetched 1024 bytes (png)\n")
	assert.Contains(t, out, "done      https://travellermap.com/api/tile?x=0\n")
	assert.Contains(t, out, "cached    https://travellermap.com/api/tile?x=1\n")
	assert.Contains(t, out, "failed    https://travellermap.com/api/tile?x=2: 503 Service Unavailable\n")
}

func TestRecorder_DiscardsWithoutOutput(t *testing.T) {
	recorder := progrock.New()
	_, vertex := recorder.Record(context.Background(), "tile")
	vertex.Log("fetched")
	vertex.Complete(nil)
	assert.NoError(t, recorder.Close())
}
