package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
)

// ErrSessionNotFound はセッションが見つからないエラーを表します
var ErrSessionNotFound = errors.New("session not found")

// SessionStore は未成年セッション記録をRedisハッシュで保持します
// 時刻はUnixミリ秒で保存し、TTLは最大セッション寿命です
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore は新しいSessionStoreを作成します
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// 存在しなければ作成し、保存済みの値を返す（先頭要素は作成したかどうか）
var findOrCreateSessionScript = redis.NewScript(`
    local key = KEYS[1]
    if redis.call('EXISTS', key) == 0 then
        redis.call('HSET', key, 'subject_id', ARGV[1], 'started_at', ARGV[2], 'last_seen_at', ARGV[2], 'origin_ip', ARGV[3])
        redis.call('PEXPIRE', key, ARGV[4])
        return {1, ARGV[1], ARGV[2], ARGV[2], ARGV[3]}
    end
    local v = redis.call('HMGET', key, 'subject_id', 'started_at', 'last_seen_at', 'origin_ip')
    return {0, v[1], v[2], v[3], v[4]}
`)

// 新しい時刻の場合のみ last_seen_at を更新する（TTLは延長しない）
var touchSessionScript = redis.NewScript(`
    local key = KEYS[1]
    local ts = tonumber(ARGV[1])
    local current = tonumber(redis.call('HGET', key, 'last_seen_at'))
    if not current then
        return 0
    end
    if ts > current then
        redis.call('HSET', key, 'last_seen_at', ARGV[1])
        return 1
    end
    return 0
`)

// FindOrCreate はセッション記録を取得し、なければ原子的に作成します
func (s *SessionStore) FindOrCreate(ctx context.Context, record *entity.SessionRecord, ttl time.Duration) (*entity.SessionRecord, bool, error) {
	result, err := findOrCreateSessionScript.Run(ctx, s.client,
		[]string{SessionKey(record.SessionID)},
		record.SubjectID.String(),
		record.StartedAt.UnixMilli(),
		record.OriginIP,
		ttl.Milliseconds(),
	).Slice()
	if err != nil {
		return nil, false, fmt.Errorf("failed to find or create session: %w", err)
	}

	stored, err := parseSessionResult(record.SessionID, result)
	if err != nil {
		return nil, false, err
	}

	created, _ := result[0].(int64)
	return stored, created == 1, nil
}

// Touch は最終アクセス日時を単調に更新します
func (s *SessionStore) Touch(ctx context.Context, sessionID string, lastSeenAt time.Time) error {
	if err := touchSessionScript.Run(ctx, s.client, []string{SessionKey(sessionID)}, lastSeenAt.UnixMilli()).Err(); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

// Delete はセッション記録を削除します
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, SessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// FindByID はセッション記録を取得します
func (s *SessionStore) FindByID(ctx context.Context, sessionID string) (*entity.SessionRecord, error) {
	values, err := s.client.HGetAll(ctx, SessionKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if len(values) == 0 {
		return nil, ErrSessionNotFound
	}

	return buildSessionRecord(sessionID, values["subject_id"], values["started_at"], values["last_seen_at"], values["origin_ip"])
}

func parseSessionResult(sessionID string, result []interface{}) (*entity.SessionRecord, error) {
	if len(result) != 5 {
		return nil, fmt.Errorf("unexpected session script result length: %d", len(result))
	}
	fields := make([]string, 4)
	for i := range fields {
		s, ok := result[i+1].(string)
		if !ok {
			return nil, fmt.Errorf("corrupted session record %s", sessionID)
		}
		fields[i] = s
	}
	return buildSessionRecord(sessionID, fields[0], fields[1], fields[2], fields[3])
}

func buildSessionRecord(sessionID, subjectID, startedAt, lastSeenAt, originIP string) (*entity.SessionRecord, error) {
	sid, err := uuid.Parse(subjectID)
	if err != nil {
		return nil, fmt.Errorf("invalid subject id in session %s: %w", sessionID, err)
	}
	started, err := strconv.ParseInt(startedAt, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid started_at in session %s: %w", sessionID, err)
	}
	lastSeen, err := strconv.ParseInt(lastSeenAt, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid last_seen_at in session %s: %w", sessionID, err)
	}

	return &entity.SessionRecord{
		SessionID:  sessionID,
		SubjectID:  sid,
		StartedAt:  time.UnixMilli(started),
		LastSeenAt: time.UnixMilli(lastSeen),
		OriginIP:   originIP,
	}, nil
}
