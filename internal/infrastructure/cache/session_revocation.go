package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRevocationList は無効化したセッションIDを管理します
// ログアウト・無効化後に同じトークンで記録が作り直されるのを防ぎます
type SessionRevocationList struct {
	client *redis.Client
}

// NewSessionRevocationList は新しいSessionRevocationListを作成します
func NewSessionRevocationList(client *redis.Client) *SessionRevocationList {
	return &SessionRevocationList{client: client}
}

// Revoke はセッションIDを ttl の間無効化します
// ttl はトークンの残り有効期限を渡します
func (l *SessionRevocationList) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	// リクエストのキャンセルで無効化が失われないようにする
	c := context.WithoutCancel(ctx)
	if err := l.client.Set(c, RevokedSessionKey(sessionID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// IsRevoked はセッションIDが無効化されているか確認します
func (l *SessionRevocationList) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	exists, err := l.client.Exists(ctx, RevokedSessionKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}
	return exists > 0, nil
}
