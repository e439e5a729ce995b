package repository

import (
	"context"
	"time"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
)

// SessionRepository は未成年セッション記録のストアインターフェースを定義します
// 実装はメモリ（単一インスタンス）またはRedis（水平スケール）です
type SessionRepository interface {
	// FindOrCreate は記録を取得し、存在しなければ record で原子的に作成します
	// 同時に作成された場合も StartedAt は最初の1件で確定し、created は1件のみtrueになります
	FindOrCreate(ctx context.Context, record *entity.SessionRecord, ttl time.Duration) (stored *entity.SessionRecord, created bool, err error)

	// Touch は最終アクセス日時を更新します（過去の時刻では更新しません）
	Touch(ctx context.Context, sessionID string, lastSeenAt time.Time) error

	// Delete はセッション記録を削除します
	Delete(ctx context.Context, sessionID string) error
}

// SessionRevoker は無効化したセッションIDの一覧を管理します
type SessionRevoker interface {
	// Revoke はセッションIDを ttl の間無効化します
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error

	// IsRevoked はセッションIDが無効化されているかを判定します
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}
