package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusbot/internal/domain"
	"focusbot/internal/session"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(time.Hour)

	sess, err := store.Create(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, sess.ID)
	assert.Empty(t, sess.History)
	assert.Nil(t, sess.Document)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
}

func TestMemoryStore_Get_Unknown(t *testing.T) {
	_, err := session.NewMemoryStore(time.Hour).Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestMemoryStore_Update_Persists(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(time.Hour)
	sess, _ := store.Create(ctx)

	err := store.Update(ctx, sess.ID, func(s *domain.Session) error {
		s.History = domain.AppendExchange(s.History, "hi", "hello", time.Now())
		return nil
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, got.History, 2)
	assert.Equal(t, "hi", got.History[0].Message)
	assert.Equal(t, "hello", got.History[1].Message)
}

func TestMemoryStore_Update_ErrorLeavesSessionUntouched(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(time.Hour)
	sess, _ := store.Create(ctx)
	boom := errors.New("boom")

	err := store.Update(ctx, sess.ID, func(s *domain.Session) error {
		s.History = append(s.History, domain.ChatTurn{Role: domain.RoleUser, Message: "lost"})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ := store.Get(ctx, sess.ID)
	assert.Empty(t, got.History)
}

func TestMemoryStore_Get_ReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(time.Hour)
	sess, _ := store.Create(ctx)
	_ = store.Update(ctx, sess.ID, func(s *domain.Session) error {
		s.History = domain.AppendExchange(s.History, "a", "b", time.Now())
		return nil
	})

	snap, _ := store.Get(ctx, sess.ID)
	snap.History[0].Message = "mutated"
	snap.History = nil

	got, _ := store.Get(ctx, sess.ID)
	require.Len(t, got.History, 2)
	assert.Equal(t, "a", got.History[0].Message)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(time.Hour)
	sess, _ := store.Create(ctx)

	require.NoError(t, store.Delete(ctx, sess.ID))

	_, err := store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(ctx, sess.ID), domain.ErrSessionNotFound)
}

func TestMemoryStore_ExpiredOnAccess(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	store := session.NewMemoryStore(30 * time.Minute).WithClock(clock.Now)
	sess, _ := store.Create(ctx)

	clock.Advance(31 * time.Minute)

	_, err := store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_AccessRefreshesIdleTimer(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	store := session.NewMemoryStore(30 * time.Minute).WithClock(clock.Now)
	sess, _ := store.Create(ctx)

	clock.Advance(20 * time.Minute)
	_, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)

	clock.Advance(20 * time.Minute)
	_, err = store.Get(ctx, sess.ID)
	assert.NoError(t, err)
}

func TestMemoryStore_Sweep(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	store := session.NewMemoryStore(time.Hour).WithClock(clock.Now)
	stale, _ := store.Create(ctx)
	clock.Advance(50 * time.Minute)
	fresh, _ := store.Create(ctx)

	removed := store.Sweep(ctx, clock.Now().Add(15*time.Minute))

	assert.Equal(t, 1, removed)
	_, err := store.Get(ctx, stale.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = store.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestMemoryStore_ZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	store := session.NewMemoryStore(0).WithClock(clock.Now)
	sess, _ := store.Create(ctx)

	clock.Advance(1000 * time.Hour)

	assert.Equal(t, 0, store.Sweep(ctx, clock.Now()))
	_, err := store.Get(ctx, sess.ID)
	assert.NoError(t, err)
}

func TestMemoryStore_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(time.Hour)
	sess, _ := store.Create(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update(ctx, sess.ID, func(s *domain.Session) error {
				s.History = domain.AppendExchange(s.History, "q", "a", time.Now())
				return nil
			})
		}()
	}
	wg.Wait()

	got, _ := store.Get(ctx, sess.ID)
	assert.Len(t, got.History, 100)
	for i, turn := range got.History {
		if i%2 == 0 {
			assert.Equal(t, domain.RoleUser, turn.Role)
		} else {
			assert.Equal(t, domain.RoleAssistant, turn.Role)
		}
	}
}
