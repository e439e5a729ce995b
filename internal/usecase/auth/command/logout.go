package command

import (
	"context"
	"time"

	"github.com/julija05/kidseducation-guard/internal/domain/repository"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
)

// LogoutInput はログアウトの入力を定義します
type LogoutInput struct {
	SessionID      string
	TokenExpiresAt time.Time
	Now            time.Time
}

// LogoutCommand はログアウトコマンドです
type LogoutCommand struct {
	sessionRepo repository.SessionRepository
	revoker     repository.SessionRevoker
	maxAge      time.Duration
}

// NewLogoutCommand は新しいLogoutCommandを作成します
func NewLogoutCommand(sessionRepo repository.SessionRepository, revoker repository.SessionRevoker, maxAge time.Duration) *LogoutCommand {
	return &LogoutCommand{
		sessionRepo: sessionRepo,
		revoker:     revoker,
		maxAge:      maxAge,
	}
}

// Execute はセッション記録を削除し、トークンの残り有効期間だけセッションIDを無効化します
func (c *LogoutCommand) Execute(ctx context.Context, input LogoutInput) error {
	if input.SessionID == "" {
		return apperror.NewInvalidRequestError("session id is required")
	}

	if err := c.sessionRepo.Delete(ctx, input.SessionID); err != nil {
		return err
	}

	ttl := input.TokenExpiresAt.Sub(input.Now)
	if input.TokenExpiresAt.IsZero() || ttl <= 0 {
		ttl = c.maxAge
	}
	return c.revoker.Revoke(ctx, input.SessionID, ttl)
}
