package ports

import (
	"context"

	"go.trai.ch/starmap/internal/core/domain"
)

// Downloader retrieves remote resources with retry and cooperative
// cancellation.
//
//go:generate mockgen -source=downloader.go -destination=mocks/mock_downloader.go -package=mocks
type Downloader interface {
	// Fetch reads the body of url into memory.
	// A cancelled transfer returns OutcomeCancelled and a nil error.
	Fetch(ctx context.Context, url string, opts domain.DownloadOptions) (domain.Payload, domain.Outcome, error)

	// DownloadToFile streams the body of url to dest. dest is only created
	// when the transfer succeeds.
	DownloadToFile(ctx context.Context, url, dest string, opts domain.DownloadOptions) (domain.Outcome, error)
}
