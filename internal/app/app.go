// Package app implements the application layer for starmap.
package app

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/starmap/internal/core/ports"
	"go.trai.ch/starmap/internal/engine/cache"
	"go.trai.ch/starmap/internal/engine/geometry"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	config     domain.Config
	resources  ports.ResourceLoader
	styles     ports.StyleLookup
	downloader ports.Downloader
	tiles      ports.TileStore
	telemetry  ports.Telemetry
	logger     ports.Logger

	mu         sync.Mutex
	index      *domain.SectorIndex
	grids      *geometry.GridCache[GridSummary]
	starfields *geometry.StarfieldCache
}

// New creates a new App instance.
func New(
	cfg domain.Config,
	resources ports.ResourceLoader,
	styles ports.StyleLookup,
	dl ports.Downloader,
	tiles ports.TileStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		config:     cfg,
		resources:  resources,
		styles:     styles,
		downloader: dl,
		tiles:      tiles,
		telemetry:  telemetry,
		logger:     logger,
		grids:      geometry.NewGridCache(cfg.Cache.GridEntries, summarizeGrid),
		starfields: geometry.NewStarfieldCache(),
	}
}

// Close releases the telemetry session.
func (a *App) Close() error {
	if a.telemetry == nil {
		return nil
	}
	return a.telemetry.Close()
}

// progressReporter is implemented by telemetry that can print progress lines.
type progressReporter interface {
	ReportTo(w io.Writer)
}

// ReportProgress prints fetch progress to w when the telemetry supports it.
func (a *App) ReportProgress(w io.Writer) {
	if r, ok := a.telemetry.(progressReporter); ok {
		r.ReportTo(w)
	}
}

// Config returns the configuration the App was built with.
func (a *App) Config() domain.Config {
	return a.config
}

// DownloadOptions returns transfer options carrying the configured retry count.
func (a *App) DownloadOptions() domain.DownloadOptions {
	return domain.DownloadOptions{Retries: a.config.Download.Retries}
}

// SectorIndex loads the configured sector index on first use.
func (a *App) SectorIndex() (*domain.SectorIndex, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.index != nil {
		return a.index, nil
	}
	idx, err := a.resources.LoadSectorIndex(a.config.Resources.Sectors)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load sector index")
	}
	a.index = idx
	return idx, nil
}

// ParseHex accepts an absolute "x,y" pair or a "<Sector Name> <XXYY>"
// location.
func (a *App) ParseHex(text string) (domain.Hex, error) {
	if xs, ys, ok := strings.Cut(text, ","); ok {
		x, xerr := strconv.Atoi(strings.TrimSpace(xs))
		y, yerr := strconv.Atoi(strings.TrimSpace(ys))
		if xerr == nil && yerr == nil {
			return domain.Hex{X: x, Y: y}, nil
		}
	}

	idx, err := a.SectorIndex()
	if err != nil {
		return domain.Hex{}, err
	}
	return idx.Resolve(text)
}

// HexReport describes one hex in every coordinate form.
type HexReport struct {
	Hex       domain.Hex
	Relative  domain.SectorHex
	Label     string
	Map       domain.MapPoint
	Neighbors [6]domain.Hex
}

// Locate resolves text and reports its coordinates and neighbours.
func (a *App) Locate(text string) (HexReport, error) {
	h, err := a.ParseHex(text)
	if err != nil {
		return HexReport{}, err
	}
	idx, err := a.SectorIndex()
	if err != nil {
		return HexReport{}, err
	}
	return HexReport{
		Hex:       h,
		Relative:  domain.AbsoluteToRelative(h),
		Label:     idx.Format(h),
		Map:       domain.HexToMap(h),
		Neighbors: domain.Neighbors(h),
	}, nil
}

// Distance returns the hex distance between two locations.
func (a *App) Distance(from, to string) (int, error) {
	a1, err := a.ParseHex(from)
	if err != nil {
		return 0, err
	}
	b1, err := a.ParseHex(to)
	if err != nil {
		return 0, err
	}
	return domain.HexDistance(a1, b1), nil
}

// ScaleReport is a zoom level in both forms.
type ScaleReport struct {
	Linear float64
	Log    float64
}

// ConvertScale converts a linear scale, or a log scale when isLog is set.
func (a *App) ConvertScale(value float64, isLog bool) (ScaleReport, error) {
	s := domain.NewLinearScale(value)
	if isLog {
		s = domain.NewLogScale(value)
	}
	if !s.Valid() {
		return ScaleReport{}, zerr.With(zerr.Wrap(domain.ErrInvalidScale, "cannot convert scale"), "value", value)
	}
	return ScaleReport{Linear: s.Linear(), Log: s.Log()}, nil
}

// MainsReport is the result of grouping a world list into mains.
type MainsReport struct {
	Worlds int
	Mains  []domain.Main
	Index  *domain.SectorIndex
}

// Mains loads the world list at path and groups the worlds into mains.
func (a *App) Mains(path string) (MainsReport, error) {
	idx, err := a.SectorIndex()
	if err != nil {
		return MainsReport{}, err
	}
	worlds, err := a.resources.LoadWorlds(path, idx)
	if err != nil {
		return MainsReport{}, zerr.Wrap(err, "failed to load worlds")
	}
	mains := domain.GenerateMains(worlds)
	a.logger.Info(fmt.Sprintf("grouped %d worlds into %d mains", len(worlds), len(mains)))
	return MainsReport{Worlds: len(worlds), Mains: mains, Index: idx}, nil
}

// BorderStyle returns the style of a border group.
func (a *App) BorderStyle(key string) domain.BorderStyle {
	return a.styles.BorderStyle(key)
}

// RouteStyle returns the style of a route group.
func (a *App) RouteStyle(key string) domain.RouteStyle {
	return a.styles.RouteStyle(key)
}

// StyleKeys lists the styled border and route groups.
func (a *App) StyleKeys() (borders, routes []string) {
	return a.styles.BorderKeys(), a.styles.RouteKeys()
}

// StarfieldReport summarises the starfield behind a map rectangle.
type StarfieldReport struct {
	Chunks    []geometry.Chunk
	Points    int
	Digest    uint64
	Generated int
}

// Starfield gathers the stars of every chunk covering the rectangle, in
// map-space coordinates.
func (a *App) Starfield(minX, minY, maxX, maxY float64) (StarfieldReport, error) {
	chunks, err := geometry.ChunksCovering(minX, minY, maxX, maxY)
	if err != nil {
		return StarfieldReport{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	var points []geometry.Point
	for _, c := range chunks {
		origin := geometry.ChunkOrigin(c)
		for _, p := range a.starfields.Starfield(c.X, c.Y) {
			points = append(points, geometry.Point{X: origin.X + p.X, Y: origin.Y + p.Y})
		}
	}
	return StarfieldReport{
		Chunks:    chunks,
		Points:    len(points),
		Digest:    geometry.Digest(points),
		Generated: a.starfields.Len(),
	}, nil
}

// GridSummary is the cached handle for a grid overlay.
type GridSummary struct {
	Points int
	Digest uint64
}

func summarizeGrid(points []geometry.Point) GridSummary {
	return GridSummary{Points: len(points), Digest: geometry.Digest(points)}
}

// GridReport describes the grid overlay for a viewport.
type GridReport struct {
	GridSummary
	Width  int
	Height int
	Hexes  int
	Stats  cache.Stats
}

// Grid returns the overlay summary for each viewport size, in order, and
// the cache counters after the last one.
func (a *App) Grid(sizes ...geometry.GridKey) []GridReport {
	a.mu.Lock()
	defer a.mu.Unlock()

	reports := make([]GridReport, 0, len(sizes))
	for _, s := range sizes {
		summary := a.grids.Grid(s.Width, s.Height)
		reports = append(reports, GridReport{
			GridSummary: summary,
			Width:       s.Width,
			Height:      s.Height,
			Hexes:       geometry.HexesPerGrid(s.Width, s.Height),
			Stats:       a.grids.Stats(),
		})
	}
	return reports
}

// FetchTiles fetches reqs through the tile store, at most limit at a time.
func (a *App) FetchTiles(ctx context.Context, reqs []domain.TileRequest, limit int, opts domain.DownloadOptions) ([]domain.CachedResource, domain.Outcome, error) {
	if len(reqs) == 1 {
		res, outcome, err := a.tiles.Get(ctx, reqs[0], opts)
		if outcome != domain.OutcomeSucceeded {
			return nil, outcome, err
		}
		return []domain.CachedResource{res}, outcome, nil
	}
	return a.tiles.GetGrid(ctx, reqs, limit, opts)
}

// Poster fetches the render of a sector or subsector through the tile store.
func (a *App) Poster(ctx context.Context, req domain.PosterRequest, opts domain.DownloadOptions) (domain.CachedResource, domain.Outcome, error) {
	return a.tiles.Poster(ctx, req, opts)
}

// Download writes the body of url to dest.
func (a *App) Download(ctx context.Context, url, dest string, opts domain.DownloadOptions) (domain.Outcome, error) {
	outcome, err := a.downloader.DownloadToFile(ctx, url, dest, opts)
	if outcome == domain.OutcomeSucceeded {
		a.logger.Info(fmt.Sprintf("downloaded %s to %s", url, dest))
	}
	return outcome, err
}

// PurgeTiles drops every cached tile.
func (a *App) PurgeTiles() error {
	if err := a.tiles.Purge(); err != nil {
		return zerr.Wrap(err, "failed to purge tile cache")
	}
	return nil
}
