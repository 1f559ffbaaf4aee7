package mirror

import (
	"context"
	"log"
	"time"

	"prtrack/internal/store"
)

// Worker periodically snapshots the remote dataset into the local blob so
// the read fallback stays fresh when the endpoint goes down. Failures are
// logged and retried on the next tick, never fatal.
type Worker struct {
	Remote   *store.Remote
	Interval time.Duration
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.Remote.Refresh(ctx); err != nil {
				log.Printf("mirror: refresh failed: %v\n", err)
			}
		}
	}
}
