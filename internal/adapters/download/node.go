package download

import (
	"context"
	"net/http"

	"github.com/grindlemire/graft"
	"go.trai.ch/starmap/internal/adapters/config"
	"go.trai.ch/starmap/internal/adapters/logger"
	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/starmap/internal/core/ports"
)

// NodeID is the unique identifier for the downloader Graft node.
const NodeID graft.ID = "adapter.downloader"

func init() {
	graft.Register(graft.Node[ports.Downloader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.Downloader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewFromConfig(log, cfg), nil
		},
	})
}

// NewFromConfig builds a Downloader from the server and download settings.
func NewFromConfig(log ports.Logger, cfg domain.Config) *Downloader {
	return New(log,
		WithClient(&http.Client{Timeout: cfg.Server.Timeout}),
		WithRateLimit(cfg.Server.RequestsPerSecond, cfg.Server.Burst),
		WithInitialBackoff(cfg.Download.InitialBackoff),
	)
}
