package middleware

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/julija05/kidseducation-guard/internal/domain/valueobject"
	"github.com/julija05/kidseducation-guard/internal/infrastructure/metrics"
	"github.com/julija05/kidseducation-guard/internal/usecase/guard"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
)

const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"

	ContextKeyGuardDecision = "guard_decision"
)

// Evaluator はガードパイプラインの判定を定義します
type Evaluator interface {
	Evaluate(ctx context.Context, req guard.Request) guard.Decision
}

// GuardMiddleware はルートごとにガードパイプラインを適用するミドルウェアを提供します
type GuardMiddleware struct {
	pipeline Evaluator
}

// NewGuardMiddleware は新しいGuardMiddlewareを作成します
func NewGuardMiddleware(pipeline Evaluator) *GuardMiddleware {
	return &GuardMiddleware{pipeline: pipeline}
}

// For はルート分類を付与したガードミドルウェアを返します
// Authenticate の後に適用する必要があります
func (m *GuardMiddleware) For(spec valueobject.RouteSpec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject := GetSubject(c)
			if subject == nil {
				return apperror.NewUnauthorizedError("authentication required")
			}

			params, err := collectParams(c)
			if err != nil {
				return err
			}

			req := guard.Request{
				Subject:    subject,
				SessionID:  GetSessionID(c),
				ClientIP:   c.RealIP(),
				UserAgent:  c.Request().UserAgent(),
				RawURL:     c.Request().RequestURI,
				Params:     params,
				Route:      spec,
				LessonID:   parseID(c.Param("lessonId")),
				ResourceID: parseID(c.Param("resourceId")),
			}
			if claims := GetClaims(c); claims != nil {
				req.AuthenticatedAt = claims.AuthenticatedAt()
				req.TokenExpiresAt = claims.ExpiresAtTime()
			}

			decision := m.pipeline.Evaluate(c.Request().Context(), req)
			record(decision)
			c.Set(ContextKeyGuardDecision, decision)

			if info := decision.RateLimit; info != nil {
				h := c.Response().Header()
				h.Set(HeaderRateLimitLimit, strconv.Itoa(info.Limit))
				h.Set(HeaderRateLimitRemaining, strconv.Itoa(info.Remaining))
				h.Set(HeaderRateLimitReset, strconv.FormatInt(info.ResetAt, 10))
			}

			if !decision.Proceed() {
				return decision.Err
			}
			return next(c)
		}
	}
}

// GetGuardDecision はコンテキストからガードの判定を取得します
func GetGuardDecision(c echo.Context) (guard.Decision, bool) {
	d, ok := c.Get(ContextKeyGuardDecision).(guard.Decision)
	return d, ok
}

func record(decision guard.Decision) {
	code := "none"
	if decision.Err != nil {
		code = string(decision.Err.Code)
	}
	metrics.TrackGuardDecision(string(decision.Outcome()), code)
	for _, reason := range decision.Reasons {
		metrics.TrackActivityReason(reason.String())
	}
}

// collectParams はクエリ・パス・フォームのパラメータをまとめます
// フォーム本文は読み取った後に元に戻し、後段のハンドラーやプロキシに渡します
func collectParams(c echo.Context) (map[string][]string, error) {
	params := make(map[string][]string)
	for key, values := range c.QueryParams() {
		params[key] = append(params[key], values...)
	}
	names := c.ParamNames()
	values := c.ParamValues()
	for i, name := range names {
		if i < len(values) {
			params[name] = append(params[name], values[i])
		}
	}

	req := c.Request()
	if req.Body == nil || !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationForm) {
		return params, nil
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, apperror.NewInvalidRequestError("failed to read request body")
	}
	req.Body = io.NopCloser(bytes.NewReader(body))

	form, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, apperror.NewInvalidRequestError("invalid form body")
	}
	for key, vs := range form {
		params[key] = append(params[key], vs...)
	}
	return params, nil
}

// parseID はパスパラメータのIDを解析します。数値でない場合は0を返します
func parseID(raw string) int64 {
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
