// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/starmap/internal/adapters/config"
	_ "go.trai.ch/starmap/internal/adapters/download"
	_ "go.trai.ch/starmap/internal/adapters/logger"
	_ "go.trai.ch/starmap/internal/adapters/stylesheet"
	_ "go.trai.ch/starmap/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/starmap/internal/adapters/tilestore"
	_ "go.trai.ch/starmap/internal/adapters/tsv"
	// Register app nodes.
	_ "go.trai.ch/starmap/internal/app"
)
