package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/internal/domain/valueobject"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
	"github.com/julija05/kidseducation-guard/pkg/jwt"
	"github.com/julija05/kidseducation-guard/pkg/logger"
)

// TokenValidator はアクセストークンの検証を定義します
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*jwt.AccessTokenClaims, error)
}

// IdentityMiddleware はアクセストークンから主体を復元するミドルウェアを提供します
// セッションの失効・期限はガードパイプラインで判定します
type IdentityMiddleware struct {
	validator TokenValidator
}

// NewIdentityMiddleware は新しいIdentityMiddlewareを作成します
func NewIdentityMiddleware(validator TokenValidator) *IdentityMiddleware {
	return &IdentityMiddleware{validator: validator}
}

// Authenticate は認証ミドルウェアを返します
func (m *IdentityMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return apperror.NewUnauthorizedError("authorization header required")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				return apperror.NewUnauthorizedError("invalid authorization header format")
			}

			claims, err := m.validator.ValidateAccessToken(parts[1])
			if err != nil {
				return apperror.NewUnauthorizedError("invalid or expired token")
			}

			role, err := valueobject.NewRole(claims.Role)
			if err != nil {
				return apperror.NewUnauthorizedError("invalid token role")
			}
			subject := entity.NewSubject(claims.SubjectID, role, claims.Minor)

			SetSubject(c, subject)
			c.Set(ContextKeyClaims, claims)
			c.Set(ContextKeySessionID, claims.SessionID)

			// ログ出力用にリクエストコンテキストにも設定
			ctx := c.Request().Context()
			ctx = logger.ContextWithSubjectID(ctx, claims.SubjectID.String())
			ctx = logger.ContextWithSessionID(ctx, claims.SessionID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
