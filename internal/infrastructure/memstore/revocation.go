package memstore

import (
	"context"
	"sync"
	"time"
)

// RevocationList はプロセス内のセッション無効化リストです
type RevocationList struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // sessionID -> 無効化の期限
	now     func() time.Time
}

// NewRevocationList は新しいRevocationListを作成します
func NewRevocationList() *RevocationList {
	return &RevocationList{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke はセッションIDを ttl の間無効化します
func (l *RevocationList) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	l.mu.Lock()
	l.revoked[sessionID] = l.now().Add(ttl)
	l.mu.Unlock()
	return nil
}

// IsRevoked はセッションIDが無効化されているかを判定します
func (l *RevocationList) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	l.mu.RLock()
	exp, ok := l.revoked[sessionID]
	l.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if l.now().After(exp) {
		l.mu.Lock()
		delete(l.revoked, sessionID)
		l.mu.Unlock()
		return false, nil
	}
	return true, nil
}

// PruneExpired は期限切れの無効化エントリを削除し、削除件数を返します
func (l *RevocationList) PruneExpired(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for sid, exp := range l.revoked {
		if now.After(exp) {
			delete(l.revoked, sid)
			removed++
		}
	}
	return removed
}
