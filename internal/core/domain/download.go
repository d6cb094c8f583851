package domain

import (
	"fmt"
	"net/http"
	"time"
)

// Outcome is the result of a transfer. Cancellation is its own outcome
// rather than an error.
type Outcome int

const (
	OutcomeSucceeded Outcome = iota
	OutcomeCancelled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

const (
	// DefaultRetries is the number of retries after the first attempt.
	DefaultRetries = 3
	// DefaultInitialBackoff is the delay before the first retry; each later
	// retry doubles it.
	DefaultInitialBackoff = 5 * time.Second
)

// retryableStatuses are the HTTP statuses worth waiting out.
var retryableStatuses = map[int]struct{}{
	http.StatusRequestTimeout:      {},
	http.StatusConflict:            {},
	http.StatusTooEarly:            {},
	http.StatusTooManyRequests:     {},
	http.StatusInternalServerError: {},
	http.StatusBadGateway:          {},
	http.StatusServiceUnavailable:  {},
	http.StatusGatewayTimeout:      {},
	509:                            {}, // bandwidth limit exceeded
}

// RetryableStatus reports whether a response with this status may succeed
// if repeated.
func RetryableStatus(code int) bool {
	_, ok := retryableStatuses[code]
	return ok
}

// StatusError is a non-success HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("GET %s: %s", e.URL, status)
}

// Retryable reports whether the status is in the retryable set.
func (e *StatusError) Retryable() bool {
	return RetryableStatus(e.StatusCode)
}

// DownloadOptions tunes a single transfer.
type DownloadOptions struct {
	// Retries is the number of retries after the first attempt. Negative
	// values are treated as zero.
	Retries int
	// IsCancelled is polled before each attempt, before each backoff and
	// after every body chunk. Returning true abandons the transfer.
	IsCancelled func() bool
	// Progress, if set, is called after every body chunk with the bytes
	// read so far and the expected total (-1 when unknown).
	Progress func(read, total int64)
}

// DefaultDownloadOptions returns options with the default retry count.
func DefaultDownloadOptions() DownloadOptions {
	return DownloadOptions{Retries: DefaultRetries}
}

// Cancelled reports whether the caller asked to abandon the transfer.
func (o DownloadOptions) Cancelled() bool {
	return o.IsCancelled != nil && o.IsCancelled()
}

// Payload is a fully read response body.
type Payload struct {
	Data        []byte
	ContentType string
}
