package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/starmap/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/starmap/internal/adapters/download"           //nolint:depguard // Wired in app layer
	"go.trai.ch/starmap/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/starmap/internal/adapters/stylesheet"         //nolint:depguard // Wired in app layer
	"go.trai.ch/starmap/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/starmap/internal/adapters/tilestore"          //nolint:depguard // Wired in app layer
	"go.trai.ch/starmap/internal/adapters/tsv"                //nolint:depguard // Wired in app layer
	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/starmap/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// levelSetter is implemented by loggers whose level can change at runtime.
type levelSetter interface {
	SetLevel(name string) error
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ConfigNodeID,
			tsv.NodeID,
			stylesheet.NodeID,
			download.NodeID,
			tilestore.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.ConfigNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	resources, err := graft.Dep[ports.ResourceLoader](ctx)
	if err != nil {
		return nil, err
	}

	styles, err := graft.Dep[ports.StyleLookup](ctx)
	if err != nil {
		return nil, err
	}

	dl, err := graft.Dep[ports.Downloader](ctx)
	if err != nil {
		return nil, err
	}

	tiles, err := graft.Dep[ports.TileStore](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(cfg, resources, styles, dl, tiles, telemetry, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	if ls, ok := log.(levelSetter); ok && cfg.Log.Level != "" {
		if err := ls.SetLevel(cfg.Log.Level); err != nil {
			return nil, zerr.Wrap(err, "failed to apply log level")
		}
	}

	return NewComponents(app, log, cfg), nil
}
