package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/julija05/kidseducation-guard/internal/infrastructure/metrics"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
)

// Metrics はHTTPリクエストのメトリクスを記録するミドルウェアを返します
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			metrics.ActiveRequests.Inc()
			defer metrics.ActiveRequests.Dec()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = statusOf(err)
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.TrackHTTPRequest(c.Request().Method, route, status, time.Since(start))

			return err
		}
	}
}

func statusOf(err error) int {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
