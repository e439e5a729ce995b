package entity

import (
	"time"

	"github.com/google/uuid"
)

// AlertEventType はアラートの種別を定義します
type AlertEventType string

const (
	// AlertEventSecurityBlocked はパス探索・スクリプト注入によるブロック
	AlertEventSecurityBlocked AlertEventType = "security_blocked"
)

// AlertEvent は保護者・運用者へ通知するイベントを表します
type AlertEvent struct {
	ID         uuid.UUID
	SubjectID  uuid.UUID
	EventType  AlertEventType
	Context    map[string]string
	OccurredAt time.Time
}

// NewAlertEvent は新しいアラートイベントを作成します
func NewAlertEvent(subjectID uuid.UUID, eventType AlertEventType, details map[string]string, now time.Time) *AlertEvent {
	ctxCopy := make(map[string]string, len(details))
	for k, v := range details {
		ctxCopy[k] = v
	}
	return &AlertEvent{
		ID:         uuid.New(),
		SubjectID:  subjectID,
		EventType:  eventType,
		Context:    ctxCopy,
		OccurredAt: now,
	}
}
