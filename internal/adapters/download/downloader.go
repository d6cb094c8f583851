// Package download implements ports.Downloader over net/http with bounded
// retry, exponential backoff and cooperative cancellation.
package download

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/starmap/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/time/rate"
)

// ChunkSize is the body read size; cancellation is checked after each chunk.
const ChunkSize = 32 * 1024

// errCancelled stops a transfer when the caller's predicate fires mid-body.
var errCancelled = zerr.New("transfer cancelled")

// Downloader implements ports.Downloader. It is safe for concurrent use.
type Downloader struct {
	client  *http.Client
	limiter *rate.Limiter
	sleeper ports.Sleeper
	logger  ports.Logger
	backoff time.Duration
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithClient replaces the HTTP client.
func WithClient(c *http.Client) Option {
	return func(d *Downloader) { d.client = c }
}

// WithRateLimit throttles attempts to rps per second with the given burst.
// A non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(d *Downloader) {
		if rps <= 0 {
			d.limiter = nil
			return
		}
		d.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// WithSleeper replaces the backoff sleeper.
func WithSleeper(s ports.Sleeper) Option {
	return func(d *Downloader) { d.sleeper = s }
}

// WithInitialBackoff sets the delay before the first retry.
func WithInitialBackoff(delay time.Duration) Option {
	return func(d *Downloader) { d.backoff = delay }
}

// New creates a Downloader with the default client, no throttling and the
// default backoff.
func New(log ports.Logger, opts ...Option) *Downloader {
	d := &Downloader{
		client:  &http.Client{},
		sleeper: TimerSleeper{},
		logger:  log,
		backoff: domain.DefaultInitialBackoff,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Fetch reads the body of url into memory.
func (d *Downloader) Fetch(ctx context.Context, url string, opts domain.DownloadOptions) (domain.Payload, domain.Outcome, error) {
	var (
		buf         bytes.Buffer
		contentType string
	)
	outcome, err := d.run(ctx, url, opts, func(resp *http.Response) (io.Writer, error) {
		buf.Reset()
		contentType = resp.Header.Get("Content-Type")
		return &buf, nil
	})
	if outcome != domain.OutcomeSucceeded {
		return domain.Payload{}, outcome, err
	}
	return domain.Payload{Data: buf.Bytes(), ContentType: contentType}, outcome, nil
}

// DownloadToFile streams the body of url into a temporary file next to dest
// and renames it into place once complete. Nothing is left behind on
// failure or cancellation.
func (d *Downloader) DownloadToFile(ctx context.Context, url, dest string, opts domain.DownloadOptions) (domain.Outcome, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return domain.OutcomeFailed, zerr.With(zerr.Wrap(domain.ErrDownloadFailed, err.Error()), "dest", dest)
	}

	tmpFile, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return domain.OutcomeFailed, zerr.With(zerr.Wrap(domain.ErrDownloadFailed, err.Error()), "dest", dest)
	}
	tmpName := tmpFile.Name()

	renamed := false
	defer func() {
		_ = tmpFile.Close()
		if !renamed {
			_ = os.Remove(tmpName)
		}
	}()

	outcome, err := d.run(ctx, url, opts, func(*http.Response) (io.Writer, error) {
		// A retried attempt starts over.
		if _, err := tmpFile.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return tmpFile, tmpFile.Truncate(0)
	})
	if outcome != domain.OutcomeSucceeded {
		return outcome, err
	}

	if err := tmpFile.Close(); err != nil {
		return domain.OutcomeFailed, zerr.With(zerr.Wrap(domain.ErrDownloadFailed, err.Error()), "dest", dest)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return domain.OutcomeFailed, zerr.With(zerr.Wrap(domain.ErrDownloadFailed, err.Error()), "dest", dest)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return domain.OutcomeFailed, zerr.With(zerr.Wrap(domain.ErrDownloadFailed, err.Error()), "dest", dest)
	}
	renamed = true
	return domain.OutcomeSucceeded, nil
}

// run drives the retry loop. sink is called once per successful response to
// obtain the body destination.
func (d *Downloader) run(
	ctx context.Context,
	url string,
	opts domain.DownloadOptions,
	sink func(*http.Response) (io.Writer, error),
) (domain.Outcome, error) {
	retries := max(opts.Retries, 0)
	delay := d.backoff

	for attempt := 0; ; attempt++ {
		if opts.Cancelled() {
			return domain.OutcomeCancelled, nil
		}
		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				return contextOutcome(ctx, url, err)
			}
		}

		err := d.attempt(ctx, url, opts, sink)
		switch {
		case err == nil:
			return domain.OutcomeSucceeded, nil
		case errors.Is(err, errCancelled):
			return domain.OutcomeCancelled, nil
		case ctx.Err() != nil:
			return contextOutcome(ctx, url, ctx.Err())
		}

		var statusErr *domain.StatusError
		if !errors.As(err, &statusErr) || !statusErr.Retryable() || attempt >= retries {
			return domain.OutcomeFailed, err
		}

		if opts.Cancelled() {
			return domain.OutcomeCancelled, nil
		}
		if d.logger != nil {
			d.logger.Warn(fmt.Sprintf("retrying %s after %s in %s (%d left)", url, statusErr.Status, delay, retries-attempt))
		}
		if vertex, ok := ports.VertexFromContext(ctx); ok {
			vertex.Log(fmt.Sprintf("%s, retrying in %s", statusErr.Status, delay))
		}
		if err := d.sleeper.Sleep(ctx, delay); err != nil {
			return contextOutcome(ctx, url, err)
		}
		delay *= 2
	}
}

// attempt performs one request and copies the body into the sink.
func (d *Downloader) attempt(
	ctx context.Context,
	url string,
	opts domain.DownloadOptions,
	sink func(*http.Response) (io.Writer, error),
) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrDownloadFailed, err.Error()), "url", url)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrDownloadFailed, err.Error()), "url", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, ChunkSize))
		return &domain.StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	w, err := sink(resp)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrDownloadFailed, err.Error()), "url", url)
	}

	buf := make([]byte, ChunkSize)
	var read int64
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return zerr.With(zerr.Wrap(domain.ErrDownloadFailed, werr.Error()), "url", url)
			}
			read += int64(n)
			if opts.Progress != nil {
				opts.Progress(read, resp.ContentLength)
			}
			if opts.Cancelled() {
				return errCancelled
			}
		}
		if errors.Is(rerr, io.EOF) {
			return nil
		}
		if rerr != nil {
			return zerr.With(zerr.Wrap(domain.ErrDownloadFailed, rerr.Error()), "url", url)
		}
	}
}

// contextOutcome maps a context error: cancellation is a clean stop, an
// expired deadline is a failure.
func contextOutcome(ctx context.Context, url string, err error) (domain.Outcome, error) {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return domain.OutcomeCancelled, nil
	}
	return domain.OutcomeFailed, zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", url)
}
