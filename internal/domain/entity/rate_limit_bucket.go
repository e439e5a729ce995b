package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julija05/kidseducation-guard/internal/domain/valueobject"
)

// BucketKey はレート制限バケットのキー（主体 × 行動分類）を定義します
type BucketKey struct {
	Class     valueobject.ActionClass
	SubjectID uuid.UUID
}

// String は "{class}:{subject}" 形式の文字列を返します
func (k BucketKey) String() string {
	return fmt.Sprintf("%s:%s", k.Class, k.SubjectID)
}

// RateLimitBucket は固定ウィンドウのカウンターを定義します
type RateLimitBucket struct {
	Key         BucketKey
	WindowStart time.Time
	Count       int
}

// NewRateLimitBucket は空のバケットを作成します
func NewRateLimitBucket(key BucketKey, now time.Time) *RateLimitBucket {
	return &RateLimitBucket{
		Key:         key,
		WindowStart: now,
	}
}

// WindowElapsed は現在のウィンドウが終了したかを判定します
func (b *RateLimitBucket) WindowElapsed(now time.Time, window time.Duration) bool {
	return now.Sub(b.WindowStart) >= window
}

// Hit はウィンドウを必要に応じてリセットしたうえでカウントを1増やします
// 呼び出し側で排他制御が必要です
func (b *RateLimitBucket) Hit(now time.Time, window time.Duration) int {
	if b.WindowElapsed(now, window) {
		b.WindowStart = now
		b.Count = 0
	}
	b.Count++
	return b.Count
}

// ResetAt はウィンドウがリセットされる時刻を返します
func (b *RateLimitBucket) ResetAt(window time.Duration) time.Time {
	return b.WindowStart.Add(window)
}

// Clone はバケットのコピーを返します
func (b *RateLimitBucket) Clone() *RateLimitBucket {
	c := *b
	return &c
}
