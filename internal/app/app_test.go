package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/starmap/internal/app"
	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/starmap/internal/core/ports/mocks"
	"go.trai.ch/starmap/internal/engine/geometry"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app       *app.App
	resources *mocks.MockResourceLoader
	styles    *mocks.MockStyleLookup
	dl        *mocks.MockDownloader
	tiles     *mocks.MockTileStore
	telemetry *mocks.MockTelemetry
	logger    *mocks.MockLogger
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := fixture{
		resources: mocks.NewMockResourceLoader(ctrl),
		styles:    mocks.NewMockStyleLookup(ctrl),
		dl:        mocks.NewMockDownloader(ctrl),
		tiles:     mocks.NewMockTileStore(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	cfg := domain.DefaultConfig()
	cfg.Download.Retries = 2
	cfg.Resources.Sectors = "sectors.tsv"
	f.app = app.New(cfg, f.resources, f.styles, f.dl, f.tiles, f.telemetry, f.logger)
	return f
}

func testIndex() *domain.SectorIndex {
	return domain.NewSectorIndex([]domain.Sector{
		{Name: domain.NewInternedString("Core"), X: 0, Y: 0},
		{Name: domain.NewInternedString("Spinward Marches"), X: -4, Y: -1},
	})
}

func TestApp_ParseHex(t *testing.T) {
	f := newFixture(t)
	f.resources.EXPECT().LoadSectorIndex("sectors.tsv").Return(testIndex(), nil).Times(1)

	h, err := f.app.ParseHex("3, -4")
	require.NoError(t, err)
	assert.Equal(t, domain.Hex{X: 3, Y: -4}, h)

	h, err = f.app.ParseHex("Core 0140")
	require.NoError(t, err)
	assert.Equal(t, domain.Hex{X: 0, Y: 0}, h)

	// The index is loaded once.
	h, err = f.app.ParseHex("Spinward Marches 1910")
	require.NoError(t, err)
	assert.Equal(t, domain.RelativeToAbsolute(domain.SectorHex{SectorX: -4, SectorY: -1, HexX: 19, HexY: 10}), h)

	_, err = f.app.ParseHex("Nowhere 0101")
	assert.ErrorIs(t, err, domain.ErrUnknownSector)

	_, err = f.app.ParseHex("garbage")
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestApp_SectorIndexError(t *testing.T) {
	f := newFixture(t)
	f.resources.EXPECT().LoadSectorIndex("sectors.tsv").Return(nil, domain.ErrResourceReadFailed)

	_, err := f.app.ParseHex("Core 0101")
	assert.ErrorIs(t, err, domain.ErrResourceReadFailed)
}

func TestApp_Locate(t *testing.T) {
	f := newFixture(t)
	f.resources.EXPECT().LoadSectorIndex(gomock.Any()).Return(testIndex(), nil)

	report, err := f.app.Locate("1,0")
	require.NoError(t, err)

	assert.Equal(t, domain.Hex{X: 1, Y: 0}, report.Hex)
	assert.Equal(t, "Core 0240", report.Label)
	assert.Equal(t, domain.SectorHex{SectorX: 0, SectorY: 0, HexX: 2, HexY: 40}, report.Relative)
	assert.Equal(t, domain.HexToMap(report.Hex), report.Map)
	assert.Equal(t, domain.Neighbors(report.Hex), report.Neighbors)
}

func TestApp_Distance(t *testing.T) {
	f := newFixture(t)

	d, err := f.app.Distance("0,0", "3,0")
	require.NoError(t, err)
	assert.Equal(t, 3, d)

	d, err = f.app.Distance("2,2", "2,-3")
	require.NoError(t, err)
	assert.Equal(t, 5, d)
}

func TestApp_ConvertScale(t *testing.T) {
	f := newFixture(t)

	r, err := f.app.ConvertScale(64, false)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, r.Log, 1e-12)
	assert.InDelta(t, 64.0, r.Linear, 1e-12)

	r, err = f.app.ConvertScale(3, true)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, r.Linear, 1e-12)

	_, err = f.app.ConvertScale(0, false)
	assert.ErrorIs(t, err, domain.ErrInvalidScale)
	_, err = f.app.ConvertScale(-1, false)
	assert.ErrorIs(t, err, domain.ErrInvalidScale)
}

func TestApp_Mains(t *testing.T) {
	f := newFixture(t)
	idx := testIndex()
	chain := []domain.Hex{{X: 0, Y: 0}, {X: 1, Y: -1}, {X: 2, Y: -1}, {X: 3, Y: -2}, {X: 4, Y: -2}, {X: 5, Y: -3}}
	lonely := domain.Hex{X: 20, Y: 20}

	f.resources.EXPECT().LoadSectorIndex(gomock.Any()).Return(idx, nil)
	f.resources.EXPECT().LoadWorlds("worlds.tsv", idx).Return(append(chain, lonely), nil)
	f.logger.EXPECT().Info("grouped 7 worlds into 1 mains")

	report, err := f.app.Mains("worlds.tsv")
	require.NoError(t, err)
	assert.Equal(t, 7, report.Worlds)
	require.Len(t, report.Mains, 1)
	assert.Equal(t, domain.Main(chain), report.Mains[0])
	assert.Same(t, idx, report.Index)
}

func TestApp_MainsLoadError(t *testing.T) {
	f := newFixture(t)
	f.resources.EXPECT().LoadSectorIndex(gomock.Any()).Return(testIndex(), nil)
	f.resources.EXPECT().LoadWorlds("missing.tsv", gomock.Any()).Return(nil, domain.ErrResourceReadFailed)

	_, err := f.app.Mains("missing.tsv")
	assert.ErrorIs(t, err, domain.ErrResourceReadFailed)
}

func TestApp_Styles(t *testing.T) {
	f := newFixture(t)
	border := domain.BorderStyle{Color: "red", Style: domain.LineStyleDashed}
	route := domain.RouteStyle{Color: "#00ff00", Width: 2, HasWidth: true}

	f.styles.EXPECT().BorderStyle("Im").Return(border)
	f.styles.EXPECT().RouteStyle("Xb").Return(route)
	f.styles.EXPECT().BorderKeys().Return([]string{"Im"})
	f.styles.EXPECT().RouteKeys().Return([]string{"Xb"})

	assert.Equal(t, border, f.app.BorderStyle("Im"))
	assert.Equal(t, route, f.app.RouteStyle("Xb"))
	borders, routes := f.app.StyleKeys()
	assert.Equal(t, []string{"Im"}, borders)
	assert.Equal(t, []string{"Xb"}, routes)
}

func TestApp_Starfield(t *testing.T) {
	f := newFixture(t)

	single, err := f.app.Starfield(0, 0, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, []geometry.Chunk{{X: 0, Y: 0}}, single.Chunks)
	assert.Equal(t, 1, single.Generated)
	assert.GreaterOrEqual(t, single.Points, 50)

	wide, err := f.app.Starfield(-300, 0, 300, 10)
	require.NoError(t, err)
	assert.Len(t, wide.Chunks, 4)
	assert.Equal(t, 4, wide.Generated, "chunk 0,0 is reused")

	// A second App generates the same field.
	again, err := newFixture(t).app.Starfield(0, 0, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, single.Digest, again.Digest)
	assert.Equal(t, single.Points, again.Points)

	_, err = f.app.Starfield(-1e12, -1e12, 1e12, 1e12)
	assert.ErrorIs(t, err, domain.ErrInvalidRegion)
}

func TestApp_Grid(t *testing.T) {
	f := newFixture(t)

	reports := f.app.Grid(
		geometry.GridKey{Width: 10, Height: 8},
		geometry.GridKey{Width: 10, Height: 8},
		geometry.GridKey{Width: 3, Height: 3},
	)
	require.Len(t, reports, 3)

	assert.Equal(t, 120, reports[0].Hexes)
	assert.Equal(t, 120*geometry.PointsPerHex, reports[0].Points)
	assert.Equal(t, geometry.Digest(geometry.GridPoints(10, 8)), reports[0].Digest)

	assert.Equal(t, reports[0].GridSummary, reports[1].GridSummary)
	assert.Equal(t, uint64(1), reports[1].Stats.Hits)
	assert.Equal(t, uint64(2), reports[2].Stats.Misses)
	assert.Equal(t, 25, reports[2].Hexes)
}

func TestApp_FetchTiles(t *testing.T) {
	f := newFixture(t)
	req := domain.TileRequest{Scale: 64, Width: 256, Height: 256, Format: domain.FormatPNG}
	res := domain.CachedResource{Key: "k", Format: domain.FormatPNG, Data: []byte("png")}
	opts := f.app.DownloadOptions()
	assert.Equal(t, 2, opts.Retries)

	f.tiles.EXPECT().Get(gomock.Any(), req, gomock.Any()).Return(res, domain.OutcomeSucceeded, nil)
	out, outcome, err := f.app.FetchTiles(context.Background(), []domain.TileRequest{req}, 4, opts)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSucceeded, outcome)
	assert.Equal(t, []domain.CachedResource{res}, out)

	reqs := []domain.TileRequest{req, req}
	f.tiles.EXPECT().GetGrid(gomock.Any(), reqs, 4, gomock.Any()).Return([]domain.CachedResource{res, res}, domain.OutcomeSucceeded, nil)
	out, _, err = f.app.FetchTiles(context.Background(), reqs, 4, opts)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	f.tiles.EXPECT().Get(gomock.Any(), req, gomock.Any()).Return(domain.CachedResource{}, domain.OutcomeCancelled, nil)
	out, outcome, err = f.app.FetchTiles(context.Background(), []domain.TileRequest{req}, 4, opts)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCancelled, outcome)
	assert.Nil(t, out)
}

func TestApp_Poster(t *testing.T) {
	f := newFixture(t)
	req := domain.PosterRequest{Sector: "Core", Scale: 32, Format: domain.FormatSVG}
	f.tiles.EXPECT().Poster(gomock.Any(), req, gomock.Any()).Return(domain.CachedResource{Key: "p"}, domain.OutcomeSucceeded, nil)

	res, outcome, err := f.app.Poster(context.Background(), req, f.app.DownloadOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSucceeded, outcome)
	assert.Equal(t, "p", res.Key)
}

func TestApp_Download(t *testing.T) {
	f := newFixture(t)
	f.dl.EXPECT().DownloadToFile(gomock.Any(), "https://example.test/a.png", "out/a.png", gomock.Any()).
		Return(domain.OutcomeSucceeded, nil)
	f.logger.EXPECT().Info("downloaded https://example.test/a.png to out/a.png")

	outcome, err := f.app.Download(context.Background(), "https://example.test/a.png", "out/a.png", f.app.DownloadOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSucceeded, outcome)

	failure := &domain.StatusError{URL: "https://example.test/b.png", StatusCode: 500}
	f.dl.EXPECT().DownloadToFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.OutcomeFailed, failure)

	outcome, err = f.app.Download(context.Background(), "https://example.test/b.png", "out/b.png", f.app.DownloadOptions())
	assert.Equal(t, domain.OutcomeFailed, outcome)
	assert.ErrorIs(t, err, failure)
}

func TestApp_PurgeTiles(t *testing.T) {
	f := newFixture(t)
	f.tiles.EXPECT().Purge().Return(nil)
	require.NoError(t, f.app.PurgeTiles())

	boom := errors.New("boom")
	f.tiles.EXPECT().Purge().Return(boom)
	assert.ErrorIs(t, f.app.PurgeTiles(), boom)
}

func TestComponents_Close(t *testing.T) {
	f := newFixture(t)
	f.telemetry.EXPECT().Close().Return(nil)

	c := app.NewComponents(f.app, f.logger, f.app.Config())
	assert.Same(t, f.app, c.App)
	assert.Equal(t, "sectors.tsv", c.Config.Resources.Sectors)
	require.NoError(t, c.Close())
}
