package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
)

// pruneInterval はこの回数のHitごとに期限切れバケットを掃除します
const pruneInterval = 1024

type bucketEntry struct {
	bucket *entity.RateLimitBucket
	window time.Duration
}

// RateLimitStore はプロセス内の固定ウィンドウカウンターです
type RateLimitStore struct {
	mu      sync.Mutex
	buckets map[string]*bucketEntry
	hits    int
}

// NewRateLimitStore は新しいRateLimitStoreを作成します
func NewRateLimitStore() *RateLimitStore {
	return &RateLimitStore{
		buckets: make(map[string]*bucketEntry),
	}
}

// Hit はカウンターを1加算し、加算後のバケットのコピーを返します
func (s *RateLimitStore) Hit(ctx context.Context, key entity.BucketKey, window time.Duration, now time.Time) (*entity.RateLimitBucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hits++
	if s.hits%pruneInterval == 0 {
		s.pruneLocked(now)
	}

	k := key.String()
	entry, ok := s.buckets[k]
	if !ok {
		entry = &bucketEntry{bucket: entity.NewRateLimitBucket(key, now)}
		s.buckets[k] = entry
	}
	entry.window = window
	entry.bucket.Hit(now, window)

	return entry.bucket.Clone(), nil
}

// Len は保持しているバケット数を返します
func (s *RateLimitStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

func (s *RateLimitStore) pruneLocked(now time.Time) {
	for k, entry := range s.buckets {
		if entry.bucket.WindowElapsed(now, entry.window) {
			delete(s.buckets, k)
		}
	}
}
