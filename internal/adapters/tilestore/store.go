// Package tilestore serves rendered map tiles and posters from a memory
// cache, a disk cache or the network, in that order.
package tilestore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.trai.ch/starmap/internal/adapters/telemetry"
	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/starmap/internal/core/ports"
	"go.trai.ch/starmap/internal/engine/cache"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultMemoryEntries is the memory cache size used when none is given.
const DefaultMemoryEntries = 256

// errGridCancelled stops the rest of a grid when one tile is cancelled.
var errGridCancelled = errors.New("grid cancelled")

// Store implements ports.TileStore. It is safe for concurrent use.
type Store struct {
	baseURL    string
	downloader ports.Downloader
	telemetry  ports.Telemetry
	logger     ports.Logger
	disk       diskCache
	now        func() time.Time

	mu     sync.Mutex
	memory *cache.EvictionCache[string, domain.CachedResource]

	inflight singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithDir enables the disk cache in dir.
func WithDir(dir string) Option {
	return func(s *Store) { s.disk = diskCache{dir: dir} }
}

// WithMemoryEntries sizes the memory cache.
func WithMemoryEntries(n int) Option {
	return func(s *Store) { s.memory = cache.New[string, domain.CachedResource](n) }
}

// WithTelemetry records a vertex per fetch.
func WithTelemetry(t ports.Telemetry) Option {
	return func(s *Store) { s.telemetry = t }
}

// WithClock replaces the clock used to stamp fetched resources.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store that fetches from baseURL through dl. Without WithDir
// only the memory cache is used.
func New(baseURL string, dl ports.Downloader, log ports.Logger, opts ...Option) *Store {
	s := &Store{
		baseURL:    baseURL,
		downloader: dl,
		logger:     log,
		telemetry:  telemetry.NewNoOp(),
		now:        time.Now,
		memory:     cache.New[string, domain.CachedResource](DefaultMemoryEntries),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the tile described by req.
func (s *Store) Get(ctx context.Context, req domain.TileRequest, opts domain.DownloadOptions) (domain.CachedResource, domain.Outcome, error) {
	url, err := req.URL(s.baseURL)
	if err != nil {
		return domain.CachedResource{}, domain.OutcomeFailed, err
	}
	return s.fetch(ctx, url, req.Format, opts)
}

// Poster returns the render of a sector or subsector.
func (s *Store) Poster(ctx context.Context, req domain.PosterRequest, opts domain.DownloadOptions) (domain.CachedResource, domain.Outcome, error) {
	url, err := req.URL(s.baseURL)
	if err != nil {
		return domain.CachedResource{}, domain.OutcomeFailed, err
	}
	return s.fetch(ctx, url, req.Format, opts)
}

// GetGrid fetches reqs with at most limit transfers in flight.
func (s *Store) GetGrid(ctx context.Context, reqs []domain.TileRequest, limit int, opts domain.DownloadOptions) ([]domain.CachedResource, domain.Outcome, error) {
	out := make([]domain.CachedResource, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))
	for i, req := range reqs {
		g.Go(func() error {
			res, outcome, err := s.Get(gctx, req, opts)
			switch outcome {
			case domain.OutcomeSucceeded:
				out[i] = res
				return nil
			case domain.OutcomeCancelled:
				return errGridCancelled
			default:
				return zerr.With(err, "tile", i)
			}
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, errGridCancelled) {
			return nil, domain.OutcomeCancelled, nil
		}
		return nil, domain.OutcomeFailed, err
	}
	return out, domain.OutcomeSucceeded, nil
}

// Purge drops every cached tile.
func (s *Store) Purge() error {
	s.mu.Lock()
	s.memory.Clear()
	s.mu.Unlock()
	return s.disk.purge()
}

// Len returns the number of tiles held in memory.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memory.Len()
}

type fetchResult struct {
	res     domain.CachedResource
	outcome domain.Outcome
}

func (s *Store) fetch(ctx context.Context, url string, want domain.Format, opts domain.DownloadOptions) (domain.CachedResource, domain.Outcome, error) {
	ctx, vertex := s.telemetry.Record(ctx, url)

	if res, ok := s.fromMemory(url); ok {
		vertex.Cached()
		vertex.Complete(nil)
		return res, domain.OutcomeSucceeded, nil
	}

	res, ok, err := s.disk.load(url)
	if err != nil {
		s.warn(err)
	}
	if ok {
		s.toMemory(res)
		vertex.Cached()
		vertex.Complete(nil)
		return res, domain.OutcomeSucceeded, nil
	}

	for {
		result, shared, err := s.download(ctx, url, want, opts, vertex)
		if result.outcome == domain.OutcomeCancelled && shared && ctx.Err() == nil && !opts.Cancelled() {
			// The transfer was cancelled by another waiter. singleflight has
			// already dropped the call, so this starts a fresh one.
			continue
		}
		switch result.outcome {
		case domain.OutcomeSucceeded:
			vertex.Complete(nil)
			return result.res, domain.OutcomeSucceeded, nil
		case domain.OutcomeCancelled:
			vertex.Complete(context.Canceled)
			return domain.CachedResource{}, domain.OutcomeCancelled, nil
		default:
			vertex.Complete(err)
			return domain.CachedResource{}, domain.OutcomeFailed, err
		}
	}
}

// download fetches url once for all concurrent callers. The transfer runs
// under the context and cancellation predicate of the caller that started it.
func (s *Store) download(ctx context.Context, url string, want domain.Format, opts domain.DownloadOptions, vertex ports.Vertex) (fetchResult, bool, error) {
	v, err, shared := s.inflight.Do(url, func() (any, error) {
		payload, outcome, err := s.downloader.Fetch(ctx, url, opts)
		if outcome != domain.OutcomeSucceeded {
			return fetchResult{outcome: outcome}, err
		}

		format := domain.DetectFormat(payload.ContentType, payload.Data)
		if format == domain.FormatUnknown {
			format = want
		}
		res := domain.CachedResource{
			Key:       url,
			Format:    format,
			Data:      payload.Data,
			FetchedAt: s.now().UTC(),
		}
		vertex.Log(fmt.Sprintf("fetched %d bytes (%s)", len(res.Data), format))

		s.toMemory(res)
		if err := s.disk.save(res); err != nil {
			s.warn(err)
		}
		return fetchResult{res: res, outcome: domain.OutcomeSucceeded}, nil
	})

	result, ok := v.(fetchResult)
	if !ok {
		result.outcome = domain.OutcomeFailed
	}
	return result, shared, err
}

func (s *Store) fromMemory(key string) (domain.CachedResource, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memory.Get(key)
}

func (s *Store) toMemory(res domain.CachedResource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memory.Put(res.Key, res)
}

func (s *Store) warn(err error) {
	if s.logger != nil {
		s.logger.Warn(fmt.Sprintf("tile cache: %v", err))
	}
}
