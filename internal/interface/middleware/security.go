package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// SecurityHeadersConfig はセキュリティヘッダー設定を定義します
type SecurityHeadersConfig struct {
	EnableHSTS    bool
	HSTSMaxAge    int
	CSPDirectives string
}

// DefaultSecurityHeadersConfig はデフォルトセキュリティヘッダー設定を返します
func DefaultSecurityHeadersConfig() SecurityHeadersConfig {
	return SecurityHeadersConfig{
		EnableHSTS:    false,
		HSTSMaxAge:    31536000, // 1年
		CSPDirectives: "default-src 'self'; frame-ancestors 'none'",
	}
}

// SecurityHeadersWithConfig は設定付きセキュリティヘッダーミドルウェアを返します
func SecurityHeadersWithConfig(cfg SecurityHeadersConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Content-Security-Policy", cfg.CSPDirectives)
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

			// 学習者ごとに判定が変わるため共有キャッシュに残さない
			h.Set(echo.HeaderCacheControl, "no-store")

			if cfg.EnableHSTS {
				h.Set("Strict-Transport-Security", fmt.Sprintf("max-age=%d; includeSubDomains", cfg.HSTSMaxAge))
			}

			return next(c)
		}
	}
}
