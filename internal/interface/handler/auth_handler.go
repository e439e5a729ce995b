package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/julija05/kidseducation-guard/internal/interface/middleware"
	"github.com/julija05/kidseducation-guard/internal/interface/presenter"
	authcmd "github.com/julija05/kidseducation-guard/internal/usecase/auth/command"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
)

// AuthHandler は認証関連のHTTPハンドラーです
// ログイン・トークン発行は認証サービスが担当し、ここではセッションの破棄のみを扱います
type AuthHandler struct {
	logoutCommand *authcmd.LogoutCommand
	now           func() time.Time
}

// NewAuthHandler は新しいAuthHandlerを作成します
func NewAuthHandler(logoutCommand *authcmd.LogoutCommand) *AuthHandler {
	return &AuthHandler{
		logoutCommand: logoutCommand,
		now:           time.Now,
	}
}

// Logout はセッションを破棄し、以後そのセッションIDを拒否します
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return apperror.NewUnauthorizedError("authentication required")
	}

	if err := h.logoutCommand.Execute(c.Request().Context(), authcmd.LogoutInput{
		SessionID:      claims.SessionID,
		TokenExpiresAt: claims.ExpiresAtTime(),
		Now:            h.now(),
	}); err != nil {
		return err
	}

	return presenter.NoContent(c)
}
