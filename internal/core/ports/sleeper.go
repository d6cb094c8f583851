package ports

import (
	"context"
	"time"
)

// Sleeper waits between download attempts.
//
//go:generate mockgen -source=sleeper.go -destination=mocks/mock_sleeper.go -package=mocks
type Sleeper interface {
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the
	// latter case.
	Sleep(ctx context.Context, d time.Duration) error
}
