// Package session keeps per-client state in process memory.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"focusbot/internal/domain"
)

// MemoryStore implements port.SessionStore with a mutex-guarded map.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[uuid.UUID]*domain.Session
}

// NewMemoryStore creates an empty store. A ttl of zero keeps sessions until
// they are deleted explicitly.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*domain.Session),
	}
}

// WithClock replaces the store's time source.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Create(_ context.Context) (*domain.Session, error) {
	now := s.now().UTC()
	sess := &domain.Session{
		ID:         uuid.New(),
		CreatedAt:  now,
		LastSeenAt: now,
		History:    []domain.ChatTurn{},
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return snapshot(sess), nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.liveLocked(id)
	if err != nil {
		return nil, err
	}
	return snapshot(sess), nil
}

func (s *MemoryStore) Update(_ context.Context, id uuid.UUID, fn func(*domain.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.liveLocked(id)
	if err != nil {
		return err
	}

	// fn works on a copy so a failed update leaves the session untouched.
	draft := snapshot(sess)
	if err := fn(draft); err != nil {
		return err
	}
	draft.ID = sess.ID
	draft.CreatedAt = sess.CreatedAt
	s.sessions[id] = draft
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Sweep(_ context.Context, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.Expired(now, s.ttl) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of sessions currently held.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// liveLocked returns the session for id and refreshes its idle timer. An
// expired session is evicted on access. Callers must hold s.mu.
func (s *MemoryStore) liveLocked(id uuid.UUID) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	now := s.now().UTC()
	if sess.Expired(now, s.ttl) {
		delete(s.sessions, id)
		return nil, fmt.Errorf("session %s expired: %w", id, domain.ErrSessionNotFound)
	}
	sess.LastSeenAt = now
	return sess, nil
}

// snapshot copies the mutable parts of a session. Documents are immutable
// after extraction and are shared.
func snapshot(sess *domain.Session) *domain.Session {
	cp := *sess
	cp.History = make([]domain.ChatTurn, len(sess.History))
	copy(cp.History, sess.History)
	return &cp
}
