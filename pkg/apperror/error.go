package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode はエラーコードを表します
type ErrorCode string

const (
	CodeValidationError    ErrorCode = "VALIDATION_ERROR"
	CodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeConflict           ErrorCode = "CONFLICT"
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
	CodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// ガード固有のエラー分類
	CodeAccessDenied       ErrorCode = "ACCESS_DENIED"
	CodeSessionInvalidated ErrorCode = "SESSION_INVALIDATED"
	CodeRateLimitExceeded  ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeContentRejected    ErrorCode = "CONTENT_REJECTED"
	CodeSecurityBlocked    ErrorCode = "SECURITY_BLOCKED"
)

// AppError はアプリケーションエラーを表します
type AppError struct {
	Code       ErrorCode    `json:"code"`
	Message    string       `json:"message"`
	Details    []FieldError `json:"details,omitempty"`
	RedirectTo string       `json:"redirect_to,omitempty"`
	RetryAfter int          `json:"-"` // 秒
	HTTPStatus int          `json:"-"`
	Err        error        `json:"-"`
}

// FieldError はフィールドエラーを表します
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error はerrorインターフェースを実装します
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap は元のエラーを返します
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsRedirect はリダイレクトを伴うエラーかを判定します
func (e *AppError) IsRedirect() bool {
	return e.RedirectTo != ""
}

// NewValidationError はバリデーションエラーを作成します
func NewValidationError(message string, details []FieldError) *AppError {
	return &AppError{
		Code:       CodeValidationError,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInvalidRequestError は不正リクエストエラーを作成します
func NewInvalidRequestError(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewUnauthorizedError は認証エラーを作成します
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbiddenError は権限エラーを作成します
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewNotFoundError はリソース不在エラーを作成します
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewConflictError は競合エラーを作成します
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewInternalError は内部エラーを作成します
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewServiceUnavailableError はサービス利用不可エラーを作成します
func NewServiceUnavailableError(message string, err error) *AppError {
	return &AppError{
		Code:       CodeServiceUnavailable,
		Message:    message,
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// NewAccessDeniedError はリダイレクト付きのアクセス拒否エラーを作成します
// 受講登録か体験期限の経過で回復可能です
func NewAccessDeniedError(redirectTo, message string) *AppError {
	return &AppError{
		Code:       CodeAccessDenied,
		Message:    message,
		RedirectTo: redirectTo,
		HTTPStatus: http.StatusSeeOther,
	}
}

// NewSessionInvalidatedError はセッション無効化エラーを作成します
func NewSessionInvalidatedError(reason string) *AppError {
	return &AppError{
		Code:       CodeSessionInvalidated,
		Message:    reason,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewTooManyRequestsError はレート制限エラーを作成します
func NewTooManyRequestsError(message string, retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimitExceeded,
		Message:    message,
		RetryAfter: retryAfterSeconds,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// NewContentRejectedError は投稿内容拒否エラーを作成します
func NewContentRejectedError(message string, details []FieldError) *AppError {
	return &AppError{
		Code:       CodeContentRejected,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewSecurityBlockedError はセキュリティブロックエラーを作成します
// 攻撃として扱うためユーザーによる回復は想定しません
func NewSecurityBlockedError(message string) *AppError {
	return &AppError{
		Code:       CodeSecurityBlocked,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// HasCode はエラーが特定のコードかどうかを判定します
func (e *AppError) HasCode(code ErrorCode) bool {
	return e.Code == code
}

// CodeOf はエラーからエラーコードを取り出します
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsNotFound はリソース不在エラーかどうかを判定します
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// IsUnauthorized は認証エラーかどうかを判定します
func IsUnauthorized(err error) bool {
	code := CodeOf(err)
	return code == CodeUnauthorized || code == CodeSessionInvalidated
}

// IsAccessDenied はアクセス拒否エラーかどうかを判定します
func IsAccessDenied(err error) bool {
	return CodeOf(err) == CodeAccessDenied
}
