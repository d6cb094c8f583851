package stylesheet

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/starmap/internal/adapters/config"
	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/starmap/internal/core/ports"
)

// NodeID is the unique identifier for the style store Graft node.
const NodeID graft.ID = "adapter.stylesheet"

func init() {
	graft.Register(graft.Node[ports.StyleLookup]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.StyleLookup, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return Load(cfg.Styles.Path)
		},
	})
}
