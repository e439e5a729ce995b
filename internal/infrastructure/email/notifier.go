package email

import (
	"context"
	"fmt"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/internal/domain/service"
)

// Notifier は保護者・運用者へアラートをメールで通知します
type Notifier struct {
	sender     Sender
	recipients []string
	appName    string
	appURL     string
}

// NewNotifier は新しいNotifierを作成します
func NewNotifier(sender Sender, recipients []string, appURL string) *Notifier {
	return &Notifier{
		sender:     sender,
		recipients: recipients,
		appName:    "KidsEducation",
		appURL:     appURL,
	}
}

// Name は通知チャネル名を返します
func (n *Notifier) Name() string {
	return "email"
}

// Notify はアラートメールを送信します
// 通知先が未設定の場合は何もしません
func (n *Notifier) Notify(ctx context.Context, event *entity.AlertEvent) error {
	if len(n.recipients) == 0 {
		return nil
	}

	title := subjectLine(event.EventType)
	body, err := RenderAlert(AlertTemplateData{
		AppName:    n.appName,
		AppURL:     n.appURL,
		Title:      title,
		SubjectID:  event.SubjectID.String(),
		OccurredAt: formatTime(event.OccurredAt),
		Details:    sortedDetails(event.Context),
	})
	if err != nil {
		return err
	}

	if err := n.sender.SendHTML(n.recipients, title, body); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}
	return nil
}

func subjectLine(eventType entity.AlertEventType) string {
	switch eventType {
	case entity.AlertEventSecurityBlocked:
		return "セキュリティアラート: 不審なアクセスをブロックしました"
	default:
		return "セキュリティアラート"
	}
}

var _ service.AlertNotifier = (*Notifier)(nil)
