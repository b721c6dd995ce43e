package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Loader reloads the collection. *workflow.Workflow implements it.
type Loader interface {
	Load(ctx context.Context) error
}

// StartPoller launches a background goroutine that reloads the collection at
// a fixed cadence. It returns immediately; the first reload happens after one
// interval since the UI performs the initial load. Failures are logged and
// surfaced through the workflow, never retried early.
func StartPoller(ctx context.Context, loader Loader, interval time.Duration, logger zerolog.Logger) {
	if interval <= 0 {
		return
	}
	log := logger.With().Str("component", "poller").Logger()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if ctx.Err() != nil {
				return
			}
			if err := loader.Load(ctx); err != nil {
				log.Warn().Err(err).Msg("auto-reload failed")
			}
		}
	}()
}
