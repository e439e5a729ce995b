package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/julija05/kidseducation-guard/internal/domain/valueobject"
	"github.com/julija05/kidseducation-guard/internal/infrastructure/di"
	"github.com/julija05/kidseducation-guard/internal/interface/presenter"
)

// ContentRoute はコンテンツサービスへ転送するルートを定義します
// アクセス判定はルート名ではなく Spec の分類で行います
type ContentRoute struct {
	Method string
	Path   string
	Spec   valueobject.RouteSpec
	// Moderate は本文の文字列フィールドをすべて検査してから転送するかを示します
	Moderate bool
}

func page(category valueobject.RouteCategory) valueobject.RouteSpec {
	return valueobject.RouteSpec{Category: category, PageView: true}
}

func action(category valueobject.RouteCategory) valueobject.RouteSpec {
	return valueobject.RouteSpec{Category: category}
}

// ContentRoutes はガードを通過した後にコンテンツサービスへ転送するルート一覧です
var ContentRoutes = []ContentRoute{
	{http.MethodGet, "/catalog", page(valueobject.RouteCategoryGeneral), false},
	{http.MethodGet, "/programs/:programId", page(valueobject.RouteCategoryGeneral), false},
	{http.MethodPost, "/programs/:programId/enroll", action(valueobject.RouteCategoryEnrollmentInitiation), false},
	{http.MethodGet, "/programs/:programId/dashboard", page(valueobject.RouteCategoryProgramDashboard), false},

	{http.MethodGet, "/demo/dashboard", page(valueobject.RouteCategoryDemo), false},
	{http.MethodGet, "/demo/expired", page(valueobject.RouteCategoryGeneral), false},

	{http.MethodGet, "/lessons/:lessonId", page(valueobject.RouteCategoryLessonDetail), false},
	{http.MethodGet, "/lessons/:lessonId/resources/:resourceId", action(valueobject.RouteCategoryLessonResource), false},
	{http.MethodPost, "/lessons/:lessonId/complete", action(valueobject.RouteCategoryEnrollmentAction), false},

	{http.MethodGet, "/quizzes/:quizId", page(valueobject.RouteCategoryQuiz), false},
	{http.MethodPost, "/quizzes/:quizId/answers", action(valueobject.RouteCategoryQuiz), true},

	{http.MethodGet, "/chat/messages", action(valueobject.RouteCategoryGeneral), false},
	{http.MethodPost, "/chat/messages", action(valueobject.RouteCategoryGeneral), true},
}

// Router はルート定義を管理します
type Router struct {
	echo        *echo.Echo
	handlers    *di.Handlers
	middlewares *di.Middlewares
}

// NewRouter は新しいRouterを作成します
func NewRouter(e *echo.Echo, handlers *di.Handlers, middlewares *di.Middlewares) *Router {
	return &Router{
		echo:        e,
		handlers:    handlers,
		middlewares: middlewares,
	}
}

// Setup は全てのルートを設定します
func (r *Router) Setup() {
	r.setupHealthRoutes()
	r.setupAPIRoutes()
	r.setupContentRoutes()
}

// setupHealthRoutes はヘルスチェックとメトリクスのルートを設定します
func (r *Router) setupHealthRoutes() {
	r.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	if r.handlers.Health == nil {
		return
	}
	r.echo.GET("/health", r.handlers.Health.Check)
	r.echo.GET("/ready", r.handlers.Health.Ready)
}

// guarded は認証とガードを順に適用するミドルウェアを返します
// 未定義パスを認証対象にしないよう、ルート単位で付与します
func (r *Router) guarded(spec valueobject.RouteSpec, extra ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
	mws := []echo.MiddlewareFunc{
		r.middlewares.Identity.Authenticate(),
		r.middlewares.Guard.For(spec),
	}
	return append(mws, extra...)
}

// setupAPIRoutes はガード自身が提供するAPIルートを設定します
func (r *Router) setupAPIRoutes() {
	api := r.echo.Group("/api/v1")

	api.GET("/", func(c echo.Context) error {
		return presenter.OK(c, map[string]string{
			"message": "KidsEducation Guard API v1",
		})
	})

	// ログアウトは期限切れ・失効済みのセッションでも受け付ける
	api.POST("/auth/logout", r.handlers.Auth.Logout, r.middlewares.Identity.Authenticate())

	api.POST("/programs/:programId/demo", r.handlers.Demo.StartDemo,
		r.guarded(action(valueobject.RouteCategoryDemoInitiation))...)
	api.GET("/me/demo", r.handlers.Demo.GetStatus,
		r.guarded(action(valueobject.RouteCategoryGeneral))...)

	api.POST("/moderation/check", r.handlers.Moderation.Check,
		r.guarded(action(valueobject.RouteCategoryGeneral))...)
	api.GET("/moderation/advisory-rules", r.handlers.Moderation.AdvisoryRules,
		r.guarded(action(valueobject.RouteCategoryGeneral))...)
}

// setupContentRoutes はコンテンツサービスへの転送ルートを設定します
func (r *Router) setupContentRoutes() {
	for _, route := range ContentRoutes {
		var extra []echo.MiddlewareFunc
		if route.Moderate {
			extra = append(extra, r.middlewares.ModerateBody)
		}
		r.echo.Add(route.Method, route.Path, r.handlers.Content.Forward, r.guarded(route.Spec, extra...)...)
	}
}
