package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/tests/testutil/mocks"
)

func TestNotifier_Notify_SendsRenderedAlert(t *testing.T) {
	sender := mocks.NewMockEmailSender(t)
	notifier := NewNotifier(sender, []string{"guardian@example.com"}, "https://kids.example.com")

	subjectID := uuid.New()
	event := entity.NewAlertEvent(subjectID, entity.AlertEventSecurityBlocked,
		map[string]string{"reasons": "path_probe", "path": "/wp-admin"},
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	var body string
	sender.On("SendHTML", []string{"guardian@example.com"}, mock.MatchedBy(func(subject string) bool {
		return strings.Contains(subject, "ブロック")
	}), mock.Anything).Run(func(args mock.Arguments) {
		body = args.String(2)
	}).Return(nil).Once()

	err := notifier.Notify(context.Background(), event)

	require.NoError(t, err)
	assert.Contains(t, body, subjectID.String())
	assert.Contains(t, body, "/wp-admin")
	assert.Contains(t, body, "2026-03-01 10:00:00 UTC")
	// キー順に並ぶ
	assert.Less(t, strings.Index(body, ">path<"), strings.Index(body, ">reasons<"))
}

func TestNotifier_Notify_NoRecipients_Skips(t *testing.T) {
	sender := mocks.NewMockEmailSender(t)
	notifier := NewNotifier(sender, nil, "")

	err := notifier.Notify(context.Background(),
		entity.NewAlertEvent(uuid.New(), entity.AlertEventSecurityBlocked, nil, time.Now()))

	require.NoError(t, err)
	sender.AssertNotCalled(t, "SendHTML", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifier_Notify_SenderError_IsWrapped(t *testing.T) {
	sendErr := errors.New("connection refused")
	sender := mocks.NewMockEmailSender(t)
	sender.On("SendHTML", []string{"ops@example.com"}, mock.Anything, mock.Anything).Return(sendErr)
	notifier := NewNotifier(sender, []string{"ops@example.com"}, "")

	err := notifier.Notify(context.Background(),
		entity.NewAlertEvent(uuid.New(), entity.AlertEventSecurityBlocked, nil, time.Now()))

	assert.ErrorIs(t, err, sendErr)
}

func TestBuildMessage_JoinsRecipients(t *testing.T) {
	msg := string(buildMessage("Safety <s@example.com>", []string{"a@example.com", "b@example.com"}, "alert", "<p>x</p>"))

	assert.Contains(t, msg, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, msg, "\r\n\r\n<p>x</p>")
}
