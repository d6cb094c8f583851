package tsv

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/starmap/internal/core/ports"
)

// NodeID is the unique identifier for the resource loader Graft node.
const NodeID graft.ID = "adapter.resource_loader"

func init() {
	graft.Register(graft.Node[ports.ResourceLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ResourceLoader, error) {
			return NewLoader(), nil
		},
	})
}
