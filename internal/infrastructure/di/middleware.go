package di

import (
	"github.com/labstack/echo/v4"

	"github.com/julija05/kidseducation-guard/internal/interface/middleware"
)

// Middlewares はアプリケーションのミドルウェアを保持します
type Middlewares struct {
	Identity     *middleware.IdentityMiddleware
	Guard        *middleware.GuardMiddleware
	ModerateBody echo.MiddlewareFunc
}

// NewMiddlewares はContainerから全てのミドルウェアを初期化します
func NewMiddlewares(c *Container) *Middlewares {
	return &Middlewares{
		Identity:     middleware.NewIdentityMiddleware(c.JWTService),
		Guard:        middleware.NewGuardMiddleware(c.Guard.Pipeline),
		ModerateBody: middleware.ModerateBody(c.Guard.CheckText),
	}
}
