package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
)

// AlertDispatcher は保護者・運用者へのアラート送信インターフェースを定義します
// 送信は非同期・ベストエフォートで、呼び出し元をブロックしません
type AlertDispatcher interface {
	Dispatch(ctx context.Context, subjectID uuid.UUID, eventType entity.AlertEventType, details map[string]string)
}

// AlertNotifier はアラートを実際に配信するチャネルを定義します
type AlertNotifier interface {
	Name() string
	Notify(ctx context.Context, event *entity.AlertEvent) error
}
