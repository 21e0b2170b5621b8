package session

import (
	"context"
	"log"
	"time"

	"focusbot/internal/port"
)

// Janitor periodically evicts idle sessions from a store.
type Janitor struct {
	store    port.SessionStore
	interval time.Duration
	now      func() time.Time
}

// NewJanitor creates a janitor that sweeps store every interval.
func NewJanitor(store port.SessionStore, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Janitor{store: store, interval: interval, now: time.Now}
}

// Start runs the sweep loop until ctx is canceled.
func (j *Janitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	log.Printf("sessionJanitor: started (interval=%s)", j.interval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("sessionJanitor: shutdown complete")
			return
		case <-ticker.C:
			if n := j.store.Sweep(ctx, j.now().UTC()); n > 0 {
				log.Printf("sessionJanitor: evicted %d idle sessions", n)
			}
		}
	}
}
