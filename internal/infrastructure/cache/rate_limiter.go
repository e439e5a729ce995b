package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
)

// RateLimitStore はRedis上の固定ウィンドウカウンターです
// バケットは ratelimit:{class}:{subject} のハッシュで、TTLはウィンドウ長です
type RateLimitStore struct {
	client *redis.Client
}

// NewRateLimitStore は新しいRateLimitStoreを作成します
func NewRateLimitStore(client *redis.Client) *RateLimitStore {
	return &RateLimitStore{client: client}
}

// Fixed Window Counter
// ウィンドウ開始時刻は呼び出し側の now を基準にし、判定・リセット・加算を1スクリプトで行う
var fixedWindowScript = redis.NewScript(`
    local key = KEYS[1]
    local now = tonumber(ARGV[1])
    local window = tonumber(ARGV[2])

    local start = tonumber(redis.call('HGET', key, 'start'))
    if (not start) or (now - start >= window) then
        start = now
        redis.call('HSET', key, 'start', start, 'count', 0)
        redis.call('PEXPIRE', key, window)
    end

    local count = redis.call('HINCRBY', key, 'count', 1)
    return {count, start}
`)

// Hit はカウンターを1加算し、加算後のバケットを返します
func (s *RateLimitStore) Hit(ctx context.Context, key entity.BucketKey, window time.Duration, now time.Time) (*entity.RateLimitBucket, error) {
	result, err := fixedWindowScript.Run(ctx, s.client, []string{RateLimitKey(key)}, now.UnixMilli(), window.Milliseconds()).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to hit rate limit: %w", err)
	}
	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected rate limit script result: %v", result)
	}

	return &entity.RateLimitBucket{
		Key:         key,
		WindowStart: time.UnixMilli(result[1]),
		Count:       int(result[0]),
	}, nil
}
