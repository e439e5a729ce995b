package command_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/internal/domain/moderation"
	"github.com/julija05/kidseducation-guard/internal/domain/valueobject"
	"github.com/julija05/kidseducation-guard/internal/usecase/security/command"
	"github.com/julija05/kidseducation-guard/tests/testutil/mocks"
)

const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func newActivityInput(subject *entity.Subject) command.EvaluateActivityInput {
	return command.EvaluateActivityInput{
		Subject:   subject,
		RawURL:    "/lessons/7?tab=notes",
		Params:    map[string][]string{"tab": {"notes"}},
		UserAgent: browserUA,
		ClientIP:  "203.0.113.10",
	}
}

func TestEvaluateActivityCommand_Execute_CleanRequest_NoSignals(t *testing.T) {
	alerts := mocks.NewMockAlertDispatcher(t)
	cmd := command.NewEvaluateActivityCommand(moderation.NewDefaultModerator(), alerts)
	minor := entity.NewSubject(uuid.New(), valueobject.RoleStudent, true)

	out, err := cmd.Execute(context.Background(), newActivityInput(minor))

	require.NoError(t, err)
	assert.False(t, out.Verdict.Suspicious())
}

func TestEvaluateActivityCommand_Execute_PathProbe_BlocksAndAlerts(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
	}{
		{"admin panel", "/wp-admin/install.php"},
		{"dotenv", "/.env"},
		{"encoded script", "/search?q=%3Cscript%3Ealert(1)%3C%2Fscript%3E"},
		{"mixed case", "/PhpMyAdmin/index.php"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			minor := entity.NewSubject(uuid.New(), valueobject.RoleStudent, true)
			alerts := mocks.NewMockAlertDispatcher(t)
			alerts.On("Dispatch", ctx, minor.ID, entity.AlertEventSecurityBlocked, mock.MatchedBy(func(d map[string]string) bool {
				return d["url"] == tt.rawURL && d["ip"] == "203.0.113.10"
			})).Once()

			input := newActivityInput(minor)
			input.RawURL = tt.rawURL
			input.Params = nil

			out, err := command.NewEvaluateActivityCommand(moderation.NewDefaultModerator(), alerts).Execute(ctx, input)

			require.NoError(t, err)
			assert.True(t, out.Verdict.Has(valueobject.ReasonPathProbe))
			assert.True(t, out.Verdict.Blocked())
		})
	}
}

func TestEvaluateActivityCommand_Execute_InjectedParam_ScriptInjection(t *testing.T) {
	ctx := context.Background()
	minor := entity.NewSubject(uuid.New(), valueobject.RoleStudent, true)
	alerts := mocks.NewMockAlertDispatcher(t)
	alerts.On("Dispatch", ctx, minor.ID, entity.AlertEventSecurityBlocked, mock.Anything).Once()

	input := newActivityInput(minor)
	input.RawURL = "/profile"
	input.Params = map[string][]string{"bio": {`<img src=x onerror=alert(1)>`}}

	out, err := command.NewEvaluateActivityCommand(moderation.NewDefaultModerator(), alerts).Execute(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, []valueobject.ReasonCode{valueobject.ReasonScriptInjection}, out.Verdict.Reasons())
}

func TestEvaluateActivityCommand_Execute_ContactInfoInParam_BlocksAndAlerts(t *testing.T) {
	tests := []struct {
		name   string
		params map[string][]string
	}{
		{"phone number value", map[string][]string{"q": {"call me 5551234567"}}},
		{"email value", map[string][]string{"q": {"mail kid@example.com"}}},
		{"external url value", map[string][]string{"next": {"https://evil.example/chat"}}},
		{"phone number as name", map[string][]string{"5551234567": {"x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			minor := entity.NewSubject(uuid.New(), valueobject.RoleStudent, true)
			alerts := mocks.NewMockAlertDispatcher(t)
			alerts.On("Dispatch", ctx, minor.ID, entity.AlertEventSecurityBlocked, mock.MatchedBy(func(d map[string]string) bool {
				return d["reasons"] == string(valueobject.ReasonScriptInjection)
			})).Once()

			input := newActivityInput(minor)
			input.Params = tt.params

			out, err := command.NewEvaluateActivityCommand(moderation.NewDefaultModerator(), alerts).Execute(ctx, input)

			require.NoError(t, err)
			assert.True(t, out.Verdict.Blocked())
			assert.Equal(t, []valueobject.ReasonCode{valueobject.ReasonScriptInjection}, out.Verdict.Reasons())
		})
	}
}

func TestEvaluateActivityCommand_Execute_PathTraversal_BlocksAndAlerts(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
	}{
		{"plain", "/catalog?file=../../etc/passwd"},
		{"encoded", "/catalog?file=%2e%2e%2f%2e%2e%2fetc%2fpasswd"},
		{"backslash", "/catalog?file=..%5C..%5Cwindows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			minor := entity.NewSubject(uuid.New(), valueobject.RoleStudent, true)
			alerts := mocks.NewMockAlertDispatcher(t)
			alerts.On("Dispatch", ctx, minor.ID, entity.AlertEventSecurityBlocked, mock.Anything).Once()

			input := newActivityInput(minor)
			input.RawURL = tt.rawURL
			input.Params = nil

			out, err := command.NewEvaluateActivityCommand(moderation.NewDefaultModerator(), alerts).Execute(ctx, input)

			require.NoError(t, err)
			assert.True(t, out.Verdict.Has(valueobject.ReasonPathProbe))
		})
	}
}

func TestEvaluateActivityCommand_Execute_SoftSignals_LoggedWithoutAlert(t *testing.T) {
	minor := entity.NewSubject(uuid.New(), valueobject.RoleStudent, true)
	input := newActivityInput(minor)
	input.UserAgent = "python-requests/2.31.0"
	input.RapidPageChanges = true

	out, err := command.NewEvaluateActivityCommand(moderation.NewDefaultModerator(), mocks.NewMockAlertDispatcher(t)).
		Execute(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, out.Verdict.Suspicious())
	assert.False(t, out.Verdict.Blocked())
	assert.ElementsMatch(t, []valueobject.ReasonCode{
		valueobject.ReasonRapidPageChanges,
		valueobject.ReasonSuspiciousUserAgent,
	}, out.Verdict.Reasons())
}

func TestEvaluateActivityCommand_Execute_EmptyUserAgent_Suspicious(t *testing.T) {
	minor := entity.NewSubject(uuid.New(), valueobject.RoleStudent, true)
	input := newActivityInput(minor)
	input.UserAgent = "  "

	out, err := command.NewEvaluateActivityCommand(moderation.NewDefaultModerator(), mocks.NewMockAlertDispatcher(t)).
		Execute(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, out.Verdict.Has(valueobject.ReasonSuspiciousUserAgent))
}

func TestEvaluateActivityCommand_Execute_Adult_Skips(t *testing.T) {
	adult := entity.NewSubject(uuid.New(), valueobject.RoleGuardian, false)
	input := newActivityInput(adult)
	input.RawURL = "/wp-admin"

	out, err := command.NewEvaluateActivityCommand(moderation.NewDefaultModerator(), mocks.NewMockAlertDispatcher(t)).
		Execute(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, out.Skipped)
	assert.False(t, out.Verdict.Suspicious())
}
