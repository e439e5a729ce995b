package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/julija05/kidseducation-guard/internal/interface/middleware"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
	"github.com/julija05/kidseducation-guard/pkg/logger"
)

// コンテンツサービスへ渡す主体情報ヘッダー
// クライアントが送った同名ヘッダーは常に上書きします
const (
	HeaderSubjectID    = "X-Subject-ID"
	HeaderSubjectRole  = "X-Subject-Role"
	HeaderSubjectMinor = "X-Subject-Minor"
	HeaderGuardSignals = "X-Guard-Signals"
)

// ContentProxy はガードを通過したリクエストをコンテンツサービスへ転送します
type ContentProxy struct {
	forward echo.HandlerFunc
}

// NewContentProxy は新しいContentProxyを作成します
func NewContentProxy(upstreamURL string) (*ContentProxy, error) {
	target, err := url.Parse(upstreamURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid content upstream url %q", upstreamURL)
	}

	proxy := echomw.ProxyWithConfig(echomw.ProxyConfig{
		Balancer: echomw.NewRoundRobinBalancer([]*echomw.ProxyTarget{
			{Name: "content", URL: target},
		}),
		ErrorHandler: func(c echo.Context, err error) error {
			logger.Error(c.Request().Context(), "content upstream failed",
				"upstream", target.Host,
				"error", err,
			)
			return apperror.NewServiceUnavailableError("content service unavailable", err)
		},
	})

	return &ContentProxy{
		forward: proxy(func(c echo.Context) error {
			return echo.NewHTTPError(http.StatusNotFound)
		}),
	}, nil
}

// Forward は主体情報を付与してリクエストを転送します
func (p *ContentProxy) Forward(c echo.Context) error {
	h := c.Request().Header
	h.Del(HeaderSubjectID)
	h.Del(HeaderSubjectRole)
	h.Del(HeaderSubjectMinor)
	h.Del(HeaderGuardSignals)

	if subject := middleware.GetSubject(c); subject != nil {
		h.Set(HeaderSubjectID, subject.ID.String())
		h.Set(HeaderSubjectRole, subject.Role.String())
		if subject.IsMinor() {
			h.Set(HeaderSubjectMinor, "true")
		}
	}
	if requestID := middleware.GetRequestID(c); requestID != "" {
		h.Set(middleware.HeaderRequestID, requestID)
	}
	if decision, ok := middleware.GetGuardDecision(c); ok && len(decision.Reasons) > 0 {
		signals := make([]string, len(decision.Reasons))
		for i, r := range decision.Reasons {
			signals[i] = r.String()
		}
		h.Set(HeaderGuardSignals, strings.Join(signals, ","))
	}

	return p.forward(c)
}
