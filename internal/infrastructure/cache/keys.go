package cache

import (
	"fmt"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
)

// KeyPrefix はRedisキーのプレフィックスを定義します
type KeyPrefix string

const (
	// セッション関連
	PrefixSession        KeyPrefix = "guard:session" // guard:session:{session_id}
	PrefixRevokedSession KeyPrefix = "guard:revoked" // guard:revoked:{session_id}

	// レート制限
	PrefixRateLimit KeyPrefix = "ratelimit" // ratelimit:{class}:{subject_id}

	// キャッシュ
	PrefixCache KeyPrefix = "cache" // cache:{namespace}:{key}
)

// SessionKey はセッション記録キーを生成します
func SessionKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", PrefixSession, sessionID)
}

// RevokedSessionKey は無効化済みセッションキーを生成します
func RevokedSessionKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", PrefixRevokedSession, sessionID)
}

// RateLimitKey はレート制限キーを生成します
func RateLimitKey(key entity.BucketKey) string {
	return fmt.Sprintf("%s:%s", PrefixRateLimit, key.String())
}

// CacheKey は汎用キャッシュキーを生成します
func CacheKey(namespace, key string) string {
	return fmt.Sprintf("%s:%s:%s", PrefixCache, namespace, key)
}
