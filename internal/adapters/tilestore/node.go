package tilestore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/starmap/internal/adapters/config"
	"go.trai.ch/starmap/internal/adapters/download"
	"go.trai.ch/starmap/internal/adapters/logger"
	"go.trai.ch/starmap/internal/adapters/telemetry/progrock"
	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/starmap/internal/core/ports"
)

// NodeID is the unique identifier for the tile store Graft node.
const NodeID graft.ID = "adapter.tile_store"

func init() {
	graft.Register(graft.Node[ports.TileStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID, download.NodeID, progrock.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.TileStore, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			dl, err := graft.Dep[ports.Downloader](ctx)
			if err != nil {
				return nil, err
			}
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.Server.BaseURL, dl, log,
				WithDir(cfg.Cache.Dir),
				WithMemoryEntries(cfg.Cache.MemoryEntries),
				WithTelemetry(tel),
			), nil
		},
	})
}
