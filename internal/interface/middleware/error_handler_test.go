package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julija05/kidseducation-guard/pkg/apperror"
)

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/lessons/1", nil), rec)

	CustomHTTPErrorHandler(err, c)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestCustomHTTPErrorHandler_AccessDenied_SetsLocation(t *testing.T) {
	rec, body := serveError(t, apperror.NewAccessDeniedError("/catalog", "enroll first"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/catalog", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "ACCESS_DENIED", body.Error.Code)
	assert.Equal(t, "/catalog", body.Error.RedirectTo)
}

func TestCustomHTTPErrorHandler_RateLimited_SetsRetryAfter(t *testing.T) {
	rec, body := serveError(t, apperror.NewTooManyRequestsError("slow down", 42))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "42", rec.Header().Get(echo.HeaderRetryAfter))
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", body.Error.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderLocation))
}

func TestCustomHTTPErrorHandler_ContentRejected_IncludesDetails(t *testing.T) {
	details := []apperror.FieldError{{Field: "text", Message: "phone numbers cannot be shared"}}
	rec, body := serveError(t, apperror.NewContentRejectedError("rejected", details))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, details, body.Error.Details)
}

func TestCustomHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	rec, body := serveError(t, echo.NewHTTPError(http.StatusNotFound, "not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", body.Error.Message)
}

func TestCustomHTTPErrorHandler_UnknownError_Returns500(t *testing.T) {
	rec, body := serveError(t, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.Equal(t, "internal server error", body.Error.Message)
}
