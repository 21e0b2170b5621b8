package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"focusbot/internal/domain"
)

// SessionStore holds per-client state in memory.
type SessionStore interface {
	Create(ctx context.Context) (*domain.Session, error)
	// Get returns a snapshot of the session and refreshes its idle timer.
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	// Update applies fn to the live session under the store's lock.
	Update(ctx context.Context, id uuid.UUID, fn func(*domain.Session) error) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Sweep removes sessions idle since before now-ttl and returns how many were removed.
	Sweep(ctx context.Context, now time.Time) int
}
