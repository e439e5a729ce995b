package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julija05/kidseducation-guard/internal/domain/moderation"
	"github.com/julija05/kidseducation-guard/internal/usecase/moderation/query"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
)

func runModerateBody(t *testing.T, body string) (bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	checker := query.NewCheckTextQuery(moderation.NewDefaultModerator())
	var called bool
	err := ModerateBody(checker)(func(c echo.Context) error {
		called = true
		forwarded, readErr := io.ReadAll(c.Request().Body)
		require.NoError(t, readErr)
		assert.Equal(t, body, string(forwarded))
		return nil
	})(c)
	return called, err
}

func TestModerateBody_CleanBody_ForwardsUnchanged(t *testing.T) {
	called, err := runModerateBody(t, `{"text":"I finished the fractions lesson!","lesson_id":3}`)

	require.NoError(t, err)
	assert.True(t, called)
}

func TestModerateBody_NestedViolation_RejectsWithFieldPath(t *testing.T) {
	called, err := runModerateBody(t, `{"message":{"parts":["hi","call me at 5551234567"]}}`)

	require.Error(t, err)
	assert.False(t, called)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeContentRejected, appErr.Code)
	require.NotEmpty(t, appErr.Details)
	assert.Equal(t, "message.parts[1]", appErr.Details[0].Field)
}

func TestModerateBody_DottedKeyCollidingWithNestedPath_StillRejected(t *testing.T) {
	body := `{"msg.text":"hello","msg":{"text":"call me at 5551234567"}}`

	for i := 0; i < 50; i++ {
		called, err := runModerateBody(t, body)

		require.Equal(t, apperror.CodeContentRejected, apperror.CodeOf(err), "attempt %d", i)
		assert.False(t, called)
	}
}

func TestModerateBody_KeysAndNumbers_Checked(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"phone number as key", `{"5551234567":"hi"}`},
		{"phone number as number", `{"text":5551234567}`},
		{"phone number as number in array", `{"parts":["hi",5551234567]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called, err := runModerateBody(t, tt.body)

			assert.Equal(t, apperror.CodeContentRejected, apperror.CodeOf(err))
			assert.False(t, called)
		})
	}
}

func TestCollectFields_KeepsEveryValue(t *testing.T) {
	fields := collectFields("", map[string]interface{}{
		"msg.text": "a",
		"msg":      map[string]interface{}{"text": "b"},
	}, nil)

	var texts []string
	for _, f := range fields {
		if f.Path == "msg.text" {
			texts = append(texts, f.Text)
		}
	}
	assert.ElementsMatch(t, []string{"msg.text", "a", "text", "b"}, texts)
}

func TestModerateBody_InvalidJSON_InvalidRequest(t *testing.T) {
	called, err := runModerateBody(t, `{"text":`)

	assert.Equal(t, apperror.CodeInvalidRequest, apperror.CodeOf(err))
	assert.False(t, called)
}

func TestModerateBody_TrailingValue_InvalidRequest(t *testing.T) {
	called, err := runModerateBody(t, `{"text":"hi"} {"text":"5551234567"}`)

	assert.Equal(t, apperror.CodeInvalidRequest, apperror.CodeOf(err))
	assert.False(t, called)
}

func TestViolationDetails_SortedAndCategoriesDeduplicated(t *testing.T) {
	details, categories := violationDetails(map[string][]moderation.Violation{
		"b": {{Category: moderation.CategoryPhoneNumber, Message: "phone"}},
		"a": {
			{Category: moderation.CategoryPhoneNumber, Message: "phone"},
			{Category: moderation.CategoryEmailAddress, Message: "email"},
		},
	})

	require.Len(t, details, 3)
	assert.Equal(t, "a", details[0].Field)
	assert.Equal(t, "b", details[2].Field)
	assert.Equal(t, []string{moderation.CategoryPhoneNumber.String(), moderation.CategoryEmailAddress.String()}, categories)
}
