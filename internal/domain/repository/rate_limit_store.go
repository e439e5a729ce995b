package repository

import (
	"context"
	"time"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
)

// RateLimitStore は固定ウィンドウカウンターのストアインターフェースを定義します
type RateLimitStore interface {
	// Hit はウィンドウの判定・リセットとカウントの加算を1回の原子的操作で行い、加算後のバケットを返します
	Hit(ctx context.Context, key entity.BucketKey, window time.Duration, now time.Time) (*entity.RateLimitBucket, error)
}
