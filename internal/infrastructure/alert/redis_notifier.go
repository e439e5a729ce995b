package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/internal/domain/service"
)

// alertMessage はPub/Subで配信するアラートの形式です
type alertMessage struct {
	ID         string            `json:"id"`
	SubjectID  string            `json:"subject_id"`
	EventType  string            `json:"event_type"`
	Context    map[string]string `json:"context"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// RedisNotifier はRedisのPub/Subチャネルへアラートを公開します
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier は新しいRedisNotifierを作成します
func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{
		client:  client,
		channel: channel,
	}
}

// Name は通知チャネル名を返します
func (n *RedisNotifier) Name() string {
	return "redis"
}

// Notify はアラートを公開します
func (n *RedisNotifier) Notify(ctx context.Context, event *entity.AlertEvent) error {
	payload, err := json.Marshal(alertMessage{
		ID:         event.ID.String(),
		SubjectID:  event.SubjectID.String(),
		EventType:  string(event.EventType),
		Context:    event.Context,
		OccurredAt: event.OccurredAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode alert: %w", err)
	}

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish alert: %w", err)
	}
	return nil
}

var _ service.AlertNotifier = (*RedisNotifier)(nil)
