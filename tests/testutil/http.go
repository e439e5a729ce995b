package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// BrowserUserAgent は通常のブラウザとして扱われるUser-Agentです
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// HTTPRequest represents a test HTTP request
type HTTPRequest struct {
	Method      string
	Path        string
	Body        interface{} // string はそのまま、それ以外はJSONに変換して送信
	Headers     map[string]string
	AccessToken string
	UserAgent   string // 空の場合は BrowserUserAgent
}

// HTTPResponse wraps the HTTP response for testing
type HTTPResponse struct {
	*httptest.ResponseRecorder
	t *testing.T
}

// DoRequest performs an HTTP request against the echo instance
func DoRequest(t *testing.T, e *echo.Echo, req HTTPRequest) *HTTPResponse {
	t.Helper()

	var body io.Reader
	switch b := req.Body.(type) {
	case nil:
	case string:
		body = strings.NewReader(b)
	default:
		jsonBody, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewReader(jsonBody)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, body)
	if body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	userAgent := req.UserAgent
	if userAgent == "" {
		userAgent = BrowserUserAgent
	}
	httpReq.Header.Set("User-Agent", userAgent)

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if req.AccessToken != "" {
		httpReq.Header.Set(echo.HeaderAuthorization, "Bearer "+req.AccessToken)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httpReq)

	return &HTTPResponse{ResponseRecorder: rec, t: t}
}

// AssertStatus asserts the response status code
func (r *HTTPResponse) AssertStatus(expected int) *HTTPResponse {
	assert.Equal(r.t, expected, r.Code, "unexpected status code, body: %s", r.Body.String())
	return r
}

// AssertRedirect はリダイレクト応答と遷移先を検証します
func (r *HTTPResponse) AssertRedirect(location string) *HTTPResponse {
	r.AssertStatus(http.StatusSeeOther)
	assert.Equal(r.t, location, r.Header().Get(echo.HeaderLocation))
	return r.AssertJSONPath("error.redirect_to", location)
}

// AssertHeaderPresent はヘッダーが設定されていることを検証します
func (r *HTTPResponse) AssertHeaderPresent(name string) *HTTPResponse {
	assert.NotEmpty(r.t, r.Header().Get(name), "header %s missing", name)
	return r
}

// AssertJSONPath asserts a specific path in the JSON response
func (r *HTTPResponse) AssertJSONPath(path string, expected interface{}) *HTTPResponse {
	value := getJSONPath(r.GetJSON(), path)
	assert.Equal(r.t, expected, value, "JSON path %s mismatch", path)
	return r
}

// AssertJSONError asserts the response contains an error with expected code
func (r *HTTPResponse) AssertJSONError(code string) *HTTPResponse {
	errorObj, ok := r.GetJSON()["error"].(map[string]interface{})
	require.True(r.t, ok, "response does not contain error object: %s", r.Body.String())
	assert.Equal(r.t, code, errorObj["code"], "error code mismatch")
	return r
}

// GetJSON parses the response body as JSON
func (r *HTTPResponse) GetJSON() map[string]interface{} {
	var result map[string]interface{}
	require.NoError(r.t, json.Unmarshal(r.Body.Bytes(), &result))
	return result
}

// getJSONPath gets a value from nested JSON using dot notation (e.g., "error.redirect_to")
func getJSONPath(data map[string]interface{}, path string) interface{} {
	current := interface{}(data)
	for _, key := range strings.Split(path, ".") {
		v, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current = v[key]
	}
	return current
}
