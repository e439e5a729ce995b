package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
)

type sessionEntry struct {
	record    entity.SessionRecord
	expiresAt time.Time
}

// SessionStore はプロセス内のセッション記録ストアです
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// NewSessionStore は新しいSessionStoreを作成します
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
	}
}

// FindOrCreate はセッション記録を取得し、なければ record で作成します
// TTLを過ぎた記録は存在しないものとして扱います
func (s *SessionStore) FindOrCreate(ctx context.Context, record *entity.SessionRecord, ttl time.Duration) (*entity.SessionRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := record.StartedAt
	if entry, ok := s.sessions[record.SessionID]; ok && !now.After(entry.expiresAt) {
		stored := entry.record
		return &stored, false, nil
	}

	s.sessions[record.SessionID] = &sessionEntry{
		record:    *record,
		expiresAt: record.StartedAt.Add(ttl),
	}
	stored := *record
	return &stored, true, nil
}

// Touch は最終アクセス日時を単調に更新します
func (s *SessionStore) Touch(ctx context.Context, sessionID string, lastSeenAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.sessions[sessionID]; ok {
		entry.record.Touch(lastSeenAt)
	}
	return nil
}

// Delete はセッション記録を削除します
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// Get はセッション記録のコピーを返します
func (s *SessionStore) Get(sessionID string) (*entity.SessionRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	stored := entry.record
	return &stored, true
}

// PruneExpired はTTLを過ぎた記録を削除し、削除件数を返します
func (s *SessionStore) PruneExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for sid, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, sid)
			removed++
		}
	}
	return removed
}
