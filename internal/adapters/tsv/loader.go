package tsv

import (
	_ "embed"
	"io"
	"os"
	"strings"

	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/zerr"
)

// Column names read by the loaders.
const (
	ColSector = "Sector"
	ColHex    = "Hex"
	ColX      = "X"
	ColY      = "Y"
)

//go:embed sectors.tsv
var defaultSectors string

// Loader implements ports.ResourceLoader over files on disk.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadSectorIndex reads the sector list at path, or the built-in list when
// path is empty.
func (l *Loader) LoadSectorIndex(path string) (*domain.SectorIndex, error) {
	if path == "" {
		return ParseSectorIndex(strings.NewReader(defaultSectors))
	}
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	idx, err := ParseSectorIndex(f)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return idx, nil
}

// LoadWorlds reads the world list at path and resolves each world against index.
func (l *Loader) LoadWorlds(path string, index *domain.SectorIndex) ([]domain.Hex, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	hexes, err := ParseWorlds(f, index)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return hexes, nil
}

// ParseSectorIndex reads Sector, X and Y columns.
func ParseSectorIndex(r io.Reader) (*domain.SectorIndex, error) {
	t, err := Read(r)
	if err != nil {
		return nil, err
	}
	if err := t.RequireColumns(ColSector, ColX, ColY); err != nil {
		return nil, err
	}

	sectors := make([]domain.Sector, 0, len(t.Records))
	for _, rec := range t.Records {
		name, err := rec.Require(ColSector)
		if err != nil {
			return nil, err
		}
		x, err := rec.Int(ColX)
		if err != nil {
			return nil, err
		}
		y, err := rec.Int(ColY)
		if err != nil {
			return nil, err
		}
		sectors = append(sectors, domain.Sector{Name: domain.NewInternedString(name), X: x, Y: y})
	}
	return domain.NewSectorIndex(sectors), nil
}

// ParseWorlds reads Sector and Hex columns and returns the absolute hex of
// every world, in file order.
func ParseWorlds(r io.Reader, index *domain.SectorIndex) ([]domain.Hex, error) {
	t, err := Read(r)
	if err != nil {
		return nil, err
	}
	if err := t.RequireColumns(ColSector, ColHex); err != nil {
		return nil, err
	}

	hexes := make([]domain.Hex, 0, len(t.Records))
	for _, rec := range t.Records {
		sector, err := rec.Require(ColSector)
		if err != nil {
			return nil, err
		}
		hex, err := rec.Require(ColHex)
		if err != nil {
			return nil, err
		}
		h, err := index.Resolve(sector + " " + hex)
		if err != nil {
			return nil, zerr.With(err, "line", rec.Line)
		}
		hexes = append(hexes, h)
	}
	return hexes, nil
}

func open(path string) (*os.File, error) {
	//nolint:gosec // Path is provided by trusted caller
	f, err := os.Open(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrResourceReadFailed, err.Error()), "path", path)
	}
	return f, nil
}
