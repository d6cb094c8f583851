package ports

import (
	"context"

	"go.trai.ch/starmap/internal/core/domain"
)

// TileStore serves rendered map images, fetching and caching them as needed.
//
//go:generate mockgen -source=tile_store.go -destination=mocks/mock_tile_store.go -package=mocks
type TileStore interface {
	// Get returns the tile for req from memory, disk or the network.
	Get(ctx context.Context, req domain.TileRequest, opts domain.DownloadOptions) (domain.CachedResource, domain.Outcome, error)

	// GetGrid fetches reqs concurrently, at most limit at a time. Results
	// are in request order. The first failure cancels the rest; a cancelled
	// tile makes the whole grid cancelled.
	GetGrid(ctx context.Context, reqs []domain.TileRequest, limit int, opts domain.DownloadOptions) ([]domain.CachedResource, domain.Outcome, error)

	// Poster returns the render of a whole sector or subsector.
	Poster(ctx context.Context, req domain.PosterRequest, opts domain.DownloadOptions) (domain.CachedResource, domain.Outcome, error)

	// Purge drops every cached tile, in memory and on disk.
	Purge() error
}
