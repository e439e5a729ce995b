package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/pkg/jwt"
)

const (
	ContextKeySubject   = "subject"
	ContextKeyClaims    = "access_claims"
	ContextKeySessionID = "session_id"
)

// GetSubject はコンテキストから認証済みの主体を取得します
func GetSubject(c echo.Context) *entity.Subject {
	if s, ok := c.Get(ContextKeySubject).(*entity.Subject); ok {
		return s
	}
	return nil
}

// GetClaims はコンテキストからアクセストークンのクレームを取得します
func GetClaims(c echo.Context) *jwt.AccessTokenClaims {
	if claims, ok := c.Get(ContextKeyClaims).(*jwt.AccessTokenClaims); ok {
		return claims
	}
	return nil
}

// GetSessionID はコンテキストからセッションIDを取得します
func GetSessionID(c echo.Context) string {
	if id, ok := c.Get(ContextKeySessionID).(string); ok {
		return id
	}
	return ""
}

// SetSubject はコンテキストに主体を設定します
func SetSubject(c echo.Context, subject *entity.Subject) {
	c.Set(ContextKeySubject, subject)
}
