package tilestore_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/starmap/internal/adapters/download"
	"go.trai.ch/starmap/internal/adapters/tilestore"
	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/starmap/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const baseURL = "https://travellermap.com"

var (
	pngData = []byte("\x89PNG\r\n\x1a\nimage")
	fixedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
)

func tileAt(x, y int) domain.TileRequest {
	return domain.TileRequest{
		Center: domain.Hex{X: x, Y: y},
		Scale:  64,
		Width:  256,
		Height: 256,
		Format: domain.FormatPNG,
	}
}

func tileURL(t *testing.T, req domain.TileRequest) string {
	t.Helper()
	u, err := req.URL(baseURL)
	require.NoError(t, err)
	return u
}

func newStore(dl *mocks.MockDownloader, log *mocks.MockLogger, opts ...tilestore.Option) *tilestore.Store {
	opts = append([]tilestore.Option{tilestore.WithClock(func() time.Time { return fixedAt })}, opts...)
	return tilestore.New(baseURL, dl, log, opts...)
}

func TestGet_CachesInMemory(t *testing.T) {
	ctrl := gomock.NewController(t)
	dl := mocks.NewMockDownloader(ctrl)
	req := tileAt(0, 0)
	url := tileURL(t, req)

	dl.EXPECT().Fetch(gomock.Any(), url, gomock.Any()).
		Return(domain.Payload{Data: pngData, ContentType: "image/png"}, domain.OutcomeSucceeded, nil).
		Times(1)

	store := newStore(dl, mocks.NewMockLogger(ctrl))

	first, outcome, err := store.Get(context.Background(), req, domain.DefaultDownloadOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSucceeded, outcome)
	assert.Equal(t, url, first.Key)
	assert.Equal(t, domain.FormatPNG, first.Format)
	assert.Equal(t, fixedAt, first.FetchedAt)

	second, outcome, err := store.Get(context.Background(), req, domain.DefaultDownloadOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSucceeded, outcome)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.Len())
}

func TestGet_RecordsTelemetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	dl := mocks.NewMockDownloader(ctrl)
	tel := mocks.NewMockTelemetry(ctrl)
	fetched := mocks.NewMockVertex(ctrl)
	hit := mocks.NewMockVertex(ctrl)
	req := tileAt(3, 4)
	url := tileURL(t, req)

	dl.EXPECT().Fetch(gomock.Any(), url, gomock.Any()).
		Return(domain.Payload{Data: pngData}, domain.OutcomeSucceeded, nil)

	gomock.InOrder(
		tel.EXPECT().Record(gomock.Any(), url).Return(context.Background(), fetched),
		tel.EXPECT().Record(gomock.Any(), url).Return(context.Background(), hit),
	)
	fetched.EXPECT().Log(gomock.Any())
	fetched.EXPECT().Complete(nil)
	hit.EXPECT().Cached()
	hit.EXPECT().Complete(nil)

	store := newStore(dl, mocks.NewMockLogger(ctrl), tilestore.WithTelemetry(tel))

	for range 2 {
		_, outcome, err := store.Get(context.Background(), req, domain.DefaultDownloadOptions())
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeSucceeded, outcome)
	}
}

func TestGet_PersistsToDisk(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	req := tileAt(-10, 7)
	url := tileURL(t, req)

	dl := mocks.NewMockDownloader(ctrl)
	dl.EXPECT().Fetch(gomock.Any(), url, gomock.Any()).
		Return(domain.Payload{Data: pngData, ContentType: "image/png"}, domain.OutcomeSucceeded, nil)

	first := newStore(dl, mocks.NewMockLogger(ctrl), tilestore.WithDir(dir))
	want, _, err := first.Get(context.Background(), req, domain.DefaultDownloadOptions())
	require.NoError(t, err)

	// A fresh store over the same directory must not touch the network.
	second := newStore(mocks.NewMockDownloader(ctrl), mocks.NewMockLogger(ctrl), tilestore.WithDir(dir))
	got, outcome, err := second.Get(context.Background(), req, domain.DefaultDownloadOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSucceeded, outcome)
	assert.Equal(t, want.Key, got.Key)
	assert.Equal(t, want.Data, got.Data)
	assert.Equal(t, domain.FormatPNG, got.Format)
	assert.True(t, want.FetchedAt.Equal(got.FetchedAt))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestGet_CancelledCachesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	req := tileAt(1, 1)

	dl := mocks.NewMockDownloader(ctrl)
	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.Payload{}, domain.OutcomeCancelled, nil).
		Times(2)

	store := newStore(dl, mocks.NewMockLogger(ctrl), tilestore.WithDir(dir))

	for range 2 {
		res, outcome, err := store.Get(context.Background(), req, domain.DefaultDownloadOptions())
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeCancelled, outcome)
		assert.Zero(t, res)
	}

	assert.Equal(t, 0, store.Len())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGet_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	req := tileAt(2, 2)
	url := tileURL(t, req)

	statusErr := &domain.StatusError{URL: url, StatusCode: http.StatusNotFound, Status: "404 Not Found"}
	dl := mocks.NewMockDownloader(ctrl)
	dl.EXPECT().Fetch(gomock.Any(), url, gomock.Any()).Return(domain.Payload{}, domain.OutcomeFailed, statusErr)

	store := newStore(dl, mocks.NewMockLogger(ctrl))
	_, outcome, err := store.Get(context.Background(), req, domain.DefaultDownloadOptions())

	assert.Equal(t, domain.OutcomeFailed, outcome)
	var got *domain.StatusError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, http.StatusNotFound, got.StatusCode)
	assert.Equal(t, 0, store.Len())
}

func TestGet_InvalidRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := newStore(mocks.NewMockDownloader(ctrl), mocks.NewMockLogger(ctrl))

	req := tileAt(0, 0)
	req.Scale = 0
	_, outcome, err := store.Get(context.Background(), req, domain.DefaultDownloadOptions())

	assert.Equal(t, domain.OutcomeFailed, outcome)
	assert.ErrorIs(t, err, domain.ErrInvalidTileRequest)
}

func TestGet_FormatDetection(t *testing.T) {
	ctrl := gomock.NewController(t)
	dl := mocks.NewMockDownloader(ctrl)

	sniffed := tileAt(0, 1)
	sniffed.Format = domain.FormatJPEG
	fallback := tileAt(0, 2)
	fallback.Format = domain.FormatSVG

	dl.EXPECT().Fetch(gomock.Any(), tileURL(t, sniffed), gomock.Any()).
		Return(domain.Payload{Data: pngData}, domain.OutcomeSucceeded, nil)
	dl.EXPECT().Fetch(gomock.Any(), tileURL(t, fallback), gomock.Any()).
		Return(domain.Payload{Data: []byte("????")}, domain.OutcomeSucceeded, nil)

	store := newStore(dl, mocks.NewMockLogger(ctrl))

	res, _, err := store.Get(context.Background(), sniffed, domain.DefaultDownloadOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.FormatPNG, res.Format)

	res, _, err = store.Get(context.Background(), fallback, domain.DefaultDownloadOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.FormatSVG, res.Format)
}

func TestGet_DiskWriteFailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	dl := mocks.NewMockDownloader(ctrl)
	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.Payload{Data: pngData}, domain.OutcomeSucceeded, nil)
	var warnings []string
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Do(func(msg string) { warnings = append(warnings, msg) }).MinTimes(1)

	store := newStore(dl, log, tilestore.WithDir(filepath.Join(blocker, "tiles")))

	res, outcome, err := store.Get(context.Background(), tileAt(5, 5), domain.DefaultDownloadOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSucceeded, outcome)
	assert.Equal(t, pngData, res.Data)
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[len(warnings)-1], domain.ErrTileCacheCreateFailed.Error())
}

func TestGet_CorruptMetadataRefetches(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	req := tileAt(9, 9)

	dl := mocks.NewMockDownloader(ctrl)
	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.Payload{Data: pngData}, domain.OutcomeSucceeded, nil).
		Times(2)

	first := newStore(dl, mocks.NewMockLogger(ctrl), tilestore.WithDir(dir))
	_, _, err := first.Get(context.Background(), req, domain.DefaultDownloadOptions())
	require.NoError(t, err)

	metas, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	require.Len(t, metas, 1)
	require.NoError(t, os.WriteFile(metas[0], []byte("{not json"), 0o600))

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)
	second := newStore(dl, log, tilestore.WithDir(dir))

	res, outcome, err := second.Get(context.Background(), req, domain.DefaultDownloadOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSucceeded, outcome)
	assert.Equal(t, pngData, res.Data)
}

func TestPoster(t *testing.T) {
	ctrl := gomock.NewController(t)
	dl := mocks.NewMockDownloader(ctrl)
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)

	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, url string, _ domain.DownloadOptions) (domain.Payload, domain.Outcome, error) {
			assert.True(t, strings.HasPrefix(url, baseURL+"/api/poster?"))
			assert.Contains(t, url, "sector=Spinward+Marches")
			return domain.Payload{Data: svg, ContentType: "image/svg+xml"}, domain.OutcomeSucceeded, nil
		})

	store := newStore(dl, mocks.NewMockLogger(ctrl))
	res, outcome, err := store.Poster(context.Background(), domain.PosterRequest{
		Sector: "Spinward Marches",
		Scale:  32,
		Format: domain.FormatSVG,
	}, domain.DefaultDownloadOptions())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSucceeded, outcome)
	assert.Equal(t, domain.FormatSVG, res.Format)
}

func TestGetGrid_PreservesOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	dl := mocks.NewMockDownloader(ctrl)
	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, url string, _ domain.DownloadOptions) (domain.Payload, domain.Outcome, error) {
			return domain.Payload{Data: []byte(url), ContentType: "image/png"}, domain.OutcomeSucceeded, nil
		}).
		Times(6)

	reqs := make([]domain.TileRequest, 6)
	for i := range reqs {
		reqs[i] = tileAt(i*4, -i)
	}

	store := newStore(dl, mocks.NewMockLogger(ctrl))
	out, outcome, err := store.GetGrid(context.Background(), reqs, 2, domain.DefaultDownloadOptions())

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSucceeded, outcome)
	require.Len(t, out, len(reqs))
	for i, req := range reqs {
		assert.Equal(t, tileURL(t, req), out[i].Key)
		assert.Equal(t, []byte(out[i].Key), out[i].Data)
	}
}

func TestGetGrid_FirstFailureWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	bad := tileAt(1, 0)
	badURL := tileURL(t, bad)

	dl := mocks.NewMockDownloader(ctrl)
	dl.EXPECT().Fetch(gomock.Any(), badURL, gomock.Any()).
		Return(domain.Payload{}, domain.OutcomeFailed, &domain.StatusError{URL: badURL, StatusCode: http.StatusForbidden})
	dl.EXPECT().Fetch(gomock.Any(), gomock.Not(badURL), gomock.Any()).
		Return(domain.Payload{Data: pngData}, domain.OutcomeSucceeded, nil).
		AnyTimes()

	store := newStore(dl, mocks.NewMockLogger(ctrl))
	out, outcome, err := store.GetGrid(context.Background(),
		[]domain.TileRequest{tileAt(0, 0), bad, tileAt(2, 0)}, 1, domain.DefaultDownloadOptions())

	assert.Nil(t, out)
	assert.Equal(t, domain.OutcomeFailed, outcome)
	var statusErr *domain.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}

func TestGetGrid_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	dl := mocks.NewMockDownloader(ctrl)
	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.Payload{}, domain.OutcomeCancelled, nil).
		MinTimes(1)

	store := newStore(dl, mocks.NewMockLogger(ctrl))
	out, outcome, err := store.GetGrid(context.Background(),
		[]domain.TileRequest{tileAt(0, 0), tileAt(1, 0)}, 1, domain.DefaultDownloadOptions())

	require.NoError(t, err)
	assert.Nil(t, out)
	assert.Equal(t, domain.OutcomeCancelled, outcome)
}

func TestPurge(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	keep := filepath.Join(dir, "README")
	require.NoError(t, os.WriteFile(keep, []byte("mine"), 0o600))

	dl := mocks.NewMockDownloader(ctrl)
	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.Payload{Data: pngData}, domain.OutcomeSucceeded, nil).
		Times(2)

	store := newStore(dl, mocks.NewMockLogger(ctrl), tilestore.WithDir(dir))
	req := tileAt(0, 0)

	_, _, err := store.Get(context.Background(), req, domain.DefaultDownloadOptions())
	require.NoError(t, err)

	require.NoError(t, store.Purge())
	assert.Equal(t, 0, store.Len())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "README", entries[0].Name())

	_, _, err = store.Get(context.Background(), req, domain.DefaultDownloadOptions())
	require.NoError(t, err)
}

func TestGet_ConcurrentCallersShareResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	dl := mocks.NewMockDownloader(ctrl)
	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.Payload{Data: pngData}, domain.OutcomeSucceeded, nil).
		MinTimes(1)

	store := newStore(dl, mocks.NewMockLogger(ctrl))
	req := tileAt(7, 7)

	var wg sync.WaitGroup
	results := make([]domain.CachedResource, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, _, err := store.Get(context.Background(), req, domain.DefaultDownloadOptions())
			assert.NoError(t, err)
			results[i] = res
		}()
	}
	wg.Wait()

	for _, res := range results {
		assert.Equal(t, pngData, res.Data)
	}
	assert.Equal(t, 1, store.Len())
}

func TestGet_CancelledCallerLeavesOthersRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	dl := mocks.NewMockDownloader(ctrl)

	started := make(chan struct{})
	var calls atomic.Int32
	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ domain.DownloadOptions) (domain.Payload, domain.Outcome, error) {
			if calls.Add(1) == 1 {
				close(started)
				<-ctx.Done()
				return domain.Payload{}, domain.OutcomeCancelled, nil
			}
			return domain.Payload{Data: pngData}, domain.OutcomeSucceeded, nil
		}).
		Times(2)

	store := newStore(dl, mocks.NewMockLogger(ctrl))
	req := tileAt(4, 2)

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	outcomeA := make(chan domain.Outcome, 1)
	go func() {
		_, outcome, _ := store.Get(ctxA, req, domain.DefaultDownloadOptions())
		outcomeA <- outcome
	}()
	<-started

	type result struct {
		res     domain.CachedResource
		outcome domain.Outcome
		err     error
	}
	resultB := make(chan result, 1)
	go func() {
		res, outcome, err := store.Get(context.Background(), req, domain.DefaultDownloadOptions())
		resultB <- result{res: res, outcome: outcome, err: err}
	}()

	// Let the second caller join the transfer in flight before cancelling the first.
	time.Sleep(50 * time.Millisecond)
	cancelA()

	assert.Equal(t, domain.OutcomeCancelled, <-outcomeA)

	b := <-resultB
	require.NoError(t, b.err)
	assert.Equal(t, domain.OutcomeSucceeded, b.outcome)
	assert.Equal(t, pngData, b.res.Data)
	assert.Equal(t, 1, store.Len())
}

func TestStore_WithDownloader(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "/api/tile", r.URL.Path)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngData)
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	dl := download.New(nil, download.WithSleeper(mocks.NewMockSleeper(ctrl)))
	store := tilestore.New(srv.URL, dl, nil, tilestore.WithDir(t.TempDir()), tilestore.WithMemoryEntries(1))

	a, b := tileAt(0, 0), tileAt(1, 0)
	for _, req := range []domain.TileRequest{a, a, b, a} {
		res, outcome, err := store.Get(context.Background(), req, domain.DefaultDownloadOptions())
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeSucceeded, outcome)
		assert.Equal(t, pngData, res.Data)
	}

	// The final lookup of a misses memory and is served from disk.
	assert.Equal(t, int32(2), requests.Load())
}
