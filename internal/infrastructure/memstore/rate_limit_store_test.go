package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/internal/domain/valueobject"
)

func TestRateLimitStore_Hit_FixedWindow(t *testing.T) {
	store := NewRateLimitStore()
	ctx := context.Background()
	key := entity.BucketKey{Class: valueobject.ActionClassGeneralRequest, SubjectID: uuid.New()}
	t0 := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	const limit = 60

	for i := 1; i <= limit; i++ {
		bucket, err := store.Hit(ctx, key, time.Minute, t0.Add(time.Duration(i)*time.Second/2))
		require.NoError(t, err)
		assert.Equal(t, i, bucket.Count)
	}

	bucket, err := store.Hit(ctx, key, time.Minute, t0.Add(59*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 61, bucket.Count)
	assert.Greater(t, bucket.Count, limit)

	bucket, err = store.Hit(ctx, key, time.Minute, t0.Add(61*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, bucket.Count)
}

func TestRateLimitStore_Hit_ConcurrentSameKey_NoLostUpdates(t *testing.T) {
	store := NewRateLimitStore()
	key := entity.BucketKey{Class: valueobject.ActionClassGeneralRequest, SubjectID: uuid.New()}
	now := time.Now()
	const n = 200
	limit := n - 1

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed, denied := 0, 0

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bucket, _ := store.Hit(context.Background(), key, time.Minute, now)
			mu.Lock()
			defer mu.Unlock()
			if bucket.Count <= limit {
				allowed++
			} else {
				denied++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, n-1, allowed)
	assert.Equal(t, 1, denied)
}

func TestRateLimitStore_Hit_ReturnsCopy(t *testing.T) {
	store := NewRateLimitStore()
	key := entity.BucketKey{Class: valueobject.ActionClassGeneralRequest, SubjectID: uuid.New()}
	now := time.Now()

	first, _ := store.Hit(context.Background(), key, time.Minute, now)
	first.Count = 100
	second, _ := store.Hit(context.Background(), key, time.Minute, now)

	assert.Equal(t, 2, second.Count)
}

func TestRateLimitStore_Prune_RemovesElapsedBuckets(t *testing.T) {
	store := NewRateLimitStore()
	t0 := time.Now()

	for i := 0; i < pruneInterval-1; i++ {
		key := entity.BucketKey{Class: valueobject.ActionClassPageTransition, SubjectID: uuid.New()}
		_, _ = store.Hit(context.Background(), key, time.Minute, t0)
	}
	require.Equal(t, pruneInterval-1, store.Len())

	fresh := entity.BucketKey{Class: valueobject.ActionClassPageTransition, SubjectID: uuid.New()}
	_, _ = store.Hit(context.Background(), fresh, time.Minute, t0.Add(2*time.Minute))

	assert.Equal(t, 1, store.Len())
}
