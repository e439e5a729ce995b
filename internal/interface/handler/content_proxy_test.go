package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julija05/kidseducation-guard/internal/domain/valueobject"
	"github.com/julija05/kidseducation-guard/internal/interface/middleware"
	"github.com/julija05/kidseducation-guard/internal/usecase/guard"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
)

func TestContentProxy_Forward_AddsSubjectHeaders(t *testing.T) {
	var got http.Header
	var gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("lesson body"))
	}))
	defer upstream.Close()

	proxy, err := NewContentProxy(upstream.URL)
	require.NoError(t, err)

	e := newTestEcho()
	c, rec := newTestContext(e, http.MethodGet, "/lessons/7", "")
	c.Request().Header.Set(HeaderSubjectID, "spoofed")
	subject := withStudent(c)
	c.Set(middleware.ContextKeyGuardDecision, guard.Decision{
		Reasons: []valueobject.ReasonCode{valueobject.ReasonRapidPageChanges},
	})

	require.NoError(t, proxy.Forward(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "lesson body", rec.Body.String())
	assert.Equal(t, "/lessons/7", gotPath)
	assert.Equal(t, subject.ID.String(), got.Get(HeaderSubjectID))
	assert.Equal(t, "student", got.Get(HeaderSubjectRole))
	assert.Equal(t, "true", got.Get(HeaderSubjectMinor))
	assert.Equal(t, valueobject.ReasonRapidPageChanges.String(), got.Get(HeaderGuardSignals))
}

func TestContentProxy_Forward_UpstreamDown_ServiceUnavailable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstreamURL := upstream.URL
	upstream.Close()

	proxy, err := NewContentProxy(upstreamURL)
	require.NoError(t, err)

	c, _ := newTestContext(newTestEcho(), http.MethodGet, "/lessons/7", "")
	withStudent(c)

	err = proxy.Forward(c)

	assert.Equal(t, apperror.CodeServiceUnavailable, apperror.CodeOf(err))
}

func TestNewContentProxy_InvalidURL(t *testing.T) {
	_, err := NewContentProxy("not a url")

	assert.Error(t, err)
}
