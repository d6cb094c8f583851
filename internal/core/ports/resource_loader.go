package ports

import "go.trai.ch/starmap/internal/core/domain"

// ResourceLoader reads tab-separated map resources.
//
//go:generate mockgen -source=resource_loader.go -destination=mocks/mock_resource_loader.go -package=mocks
type ResourceLoader interface {
	// LoadSectorIndex reads a sector list. An empty path loads the built-in list.
	LoadSectorIndex(path string) (*domain.SectorIndex, error)

	// LoadWorlds reads a world list and returns the absolute hex of every world.
	LoadWorlds(path string, index *domain.SectorIndex) ([]domain.Hex, error)
}
