package command

import (
	"context"
	"log/slog"
	"time"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/internal/domain/repository"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
)

const (
	ReasonSessionMissing = "session required"
	ReasonSessionRevoked = "session revoked"
	ReasonSessionExpired = "session expired"
	ReasonOriginChanged  = "origin changed"
)

// CheckSessionInput はセッション検証の入力を定義します
type CheckSessionInput struct {
	Subject         *entity.Subject
	SessionID       string
	ClientIP        string
	AuthenticatedAt time.Time // 認証時刻（トークンの auth_time）
	TokenExpiresAt  time.Time
	Now             time.Time
}

// CheckSessionOutput はセッション検証の出力を定義します
type CheckSessionOutput struct {
	Record  *entity.SessionRecord
	Created bool
	Skipped bool // 未成年以外は検証しない
}

// CheckSessionCommand は未成年セッションの寿命・接続元を検証するコマンドです
type CheckSessionCommand struct {
	sessionRepo repository.SessionRepository
	revoker     repository.SessionRevoker
	maxAge      time.Duration
}

// NewCheckSessionCommand は新しいCheckSessionCommandを作成します
func NewCheckSessionCommand(
	sessionRepo repository.SessionRepository,
	revoker repository.SessionRevoker,
	maxAge time.Duration,
) *CheckSessionCommand {
	return &CheckSessionCommand{
		sessionRepo: sessionRepo,
		revoker:     revoker,
		maxAge:      maxAge,
	}
}

// Execute はセッション検証を実行します
// ストア障害時はフェイルクローズで SERVICE_UNAVAILABLE を返します
func (c *CheckSessionCommand) Execute(ctx context.Context, input CheckSessionInput) (*CheckSessionOutput, error) {
	if !input.Subject.IsMinor() {
		return &CheckSessionOutput{Skipped: true}, nil
	}
	if input.SessionID == "" {
		return nil, apperror.NewSessionInvalidatedError(ReasonSessionMissing)
	}

	revoked, err := c.revoker.IsRevoked(ctx, input.SessionID)
	if err != nil {
		return nil, apperror.NewServiceUnavailableError("session store unavailable", err)
	}
	if revoked {
		return nil, apperror.NewSessionInvalidatedError(ReasonSessionRevoked)
	}

	// 1. 初回リクエストで記録を確定（既存なら取得のみ）
	candidate := entity.NewSessionRecord(input.SessionID, input.Subject.ID, input.ClientIP, input.Now)
	record, created, err := c.sessionRepo.FindOrCreate(ctx, candidate, c.maxAge)
	if err != nil {
		return nil, apperror.NewServiceUnavailableError("session store unavailable", err)
	}

	if created {
		// TTLで記録が消えた古いトークンは期限切れとして扱う
		if !input.AuthenticatedAt.IsZero() && input.Now.Sub(input.AuthenticatedAt) > c.maxAge {
			return nil, c.destroy(ctx, input, ReasonSessionExpired)
		}
		return &CheckSessionOutput{Record: record, Created: true}, nil
	}

	// 2. 絶対寿命
	if record.IsExpired(input.Now, c.maxAge) {
		return nil, c.destroy(ctx, input, ReasonSessionExpired)
	}

	// 3. 接続元IP
	if !record.OriginMatches(input.ClientIP) {
		return nil, c.destroy(ctx, input, ReasonOriginChanged)
	}

	// 4. 最終アクセス日時
	if record.Touch(input.Now) {
		if err := c.sessionRepo.Touch(ctx, input.SessionID, input.Now); err != nil {
			return nil, apperror.NewServiceUnavailableError("session store unavailable", err)
		}
	}

	return &CheckSessionOutput{Record: record}, nil
}

// destroy は記録を削除し、同じトークンでの再作成を防ぐためセッションIDを無効化します
func (c *CheckSessionCommand) destroy(ctx context.Context, input CheckSessionInput, reason string) error {
	if err := c.sessionRepo.Delete(ctx, input.SessionID); err != nil {
		slog.ErrorContext(ctx, "failed to delete session record", "error", err, "session_id", input.SessionID)
	}

	ttl := c.maxAge
	if remaining := input.TokenExpiresAt.Sub(input.Now); !input.TokenExpiresAt.IsZero() && remaining > 0 {
		ttl = remaining
	}
	if err := c.revoker.Revoke(ctx, input.SessionID, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to revoke session", "error", err, "session_id", input.SessionID)
	}

	return apperror.NewSessionInvalidatedError(reason)
}
