package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
)

func TestSessionStore_FindOrCreate_CreatesOnceThenReturnsStored(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()
	subject := uuid.New()
	t0 := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	first, created, err := store.FindOrCreate(ctx, entity.NewSessionRecord("sid-1", subject, "203.0.113.10", t0), 30*time.Minute)
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, first.StartedAt.Equal(t0))

	second, created, err := store.FindOrCreate(ctx, entity.NewSessionRecord("sid-1", subject, "198.51.100.7", t0.Add(5*time.Minute)), 30*time.Minute)
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, second.StartedAt.Equal(t0))
	assert.Equal(t, "203.0.113.10", second.OriginIP)
	assert.Equal(t, subject, second.SubjectID)

	assert.Equal(t, 30*time.Minute, mr.TTL(SessionKey("sid-1")))
}

func TestSessionStore_FindOrCreate_Concurrent_FixesStartedAtOnce(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewSessionStore(client)
	subject := uuid.New()
	t0 := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	const n = 20

	var wg sync.WaitGroup
	var mu sync.Mutex
	createdCount := 0
	starts := make(map[int64]bool)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			record := entity.NewSessionRecord("sid-race", subject, "203.0.113.10", t0.Add(time.Duration(i)*time.Millisecond))
			stored, created, err := store.FindOrCreate(context.Background(), record, 30*time.Minute)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if created {
				createdCount++
			}
			starts[stored.StartedAt.UnixMilli()] = true
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, createdCount)
	assert.Len(t, starts, 1)
}

func TestSessionStore_Touch_IsMonotonic(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()
	t0 := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	_, _, err := store.FindOrCreate(ctx, entity.NewSessionRecord("sid-1", uuid.New(), "203.0.113.10", t0), 30*time.Minute)
	require.NoError(t, err)

	require.NoError(t, store.Touch(ctx, "sid-1", t0.Add(10*time.Minute)))
	require.NoError(t, store.Touch(ctx, "sid-1", t0.Add(3*time.Minute)))

	record, err := store.FindByID(ctx, "sid-1")
	require.NoError(t, err)
	assert.True(t, record.LastSeenAt.Equal(t0.Add(10*time.Minute)))
	assert.True(t, record.StartedAt.Equal(t0))
}

func TestSessionStore_Touch_MissingRecord_DoesNotCreate(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStore(client)

	require.NoError(t, store.Touch(context.Background(), "ghost", time.Now()))

	assert.False(t, mr.Exists(SessionKey("ghost")))
}

func TestSessionStore_Delete_RemovesRecord(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()
	_, _, err := store.FindOrCreate(ctx, entity.NewSessionRecord("sid-1", uuid.New(), "203.0.113.10", time.Now()), 30*time.Minute)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "sid-1"))

	_, err = store.FindByID(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_TTLElapsed_RecordSelfCleans(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()
	_, _, err := store.FindOrCreate(ctx, entity.NewSessionRecord("sid-1", uuid.New(), "203.0.113.10", time.Now()), 30*time.Minute)
	require.NoError(t, err)

	mr.FastForward(31 * time.Minute)

	_, err = store.FindByID(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
