package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/julija05/kidseducation-guard/pkg/apperror"
	"github.com/julija05/kidseducation-guard/pkg/logger"
)

// ErrorResponse はエラーレスポンス構造を定義します
type ErrorResponse struct {
	Error ErrorBody   `json:"error"`
	Meta  interface{} `json:"meta"`
}

// ErrorBody はエラー本体を定義します
type ErrorBody struct {
	Code       string                `json:"code"`
	Message    string                `json:"message"`
	Details    []apperror.FieldError `json:"details,omitempty"`
	RedirectTo string                `json:"redirect_to,omitempty"`
}

// CustomHTTPErrorHandler はカスタムエラーハンドラーです
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	ctx := c.Request().Context()

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		response := ErrorResponse{
			Error: ErrorBody{
				Code:       string(appErr.Code),
				Message:    appErr.Message,
				Details:    appErr.Details,
				RedirectTo: appErr.RedirectTo,
			},
		}

		if appErr.HTTPStatus >= 500 {
			logger.Error(ctx, "internal error", "error", appErr.Error())
		}

		h := c.Response().Header()
		if appErr.IsRedirect() {
			h.Set(echo.HeaderLocation, appErr.RedirectTo)
		}
		if appErr.RetryAfter > 0 {
			h.Set(echo.HeaderRetryAfter, strconv.Itoa(appErr.RetryAfter))
		}

		_ = c.JSON(appErr.HTTPStatus, response)
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		response := ErrorResponse{
			Error: ErrorBody{
				Code:    http.StatusText(he.Code),
				Message: fmt.Sprintf("%v", he.Message),
			},
		}

		_ = c.JSON(he.Code, response)
		return
	}

	logger.Error(ctx, "unknown error", "error", err.Error())

	response := ErrorResponse{
		Error: ErrorBody{
			Code:    string(apperror.CodeInternalError),
			Message: "internal server error",
		},
	}

	_ = c.JSON(http.StatusInternalServerError, response)
}
