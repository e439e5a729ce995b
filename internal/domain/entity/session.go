package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionRecord は未成年アカウントのセッション記録を定義します
// StartedAt と OriginIP は作成時に一度だけ確定します
type SessionRecord struct {
	SessionID  string
	SubjectID  uuid.UUID
	StartedAt  time.Time
	LastSeenAt time.Time
	OriginIP   string
}

// NewSessionRecord は新しいセッション記録を作成します
func NewSessionRecord(sessionID string, subjectID uuid.UUID, originIP string, now time.Time) *SessionRecord {
	return &SessionRecord{
		SessionID:  sessionID,
		SubjectID:  subjectID,
		StartedAt:  now,
		LastSeenAt: now,
		OriginIP:   originIP,
	}
}

// Age はセッション開始からの経過時間を返します
func (s *SessionRecord) Age(now time.Time) time.Duration {
	return now.Sub(s.StartedAt)
}

// IsExpired は絶対寿命を超えたかを判定します（最終アクセスによる延長はしません）
func (s *SessionRecord) IsExpired(now time.Time, maxAge time.Duration) bool {
	return s.Age(now) > maxAge
}

// OriginMatches はリクエスト元IPが作成時と一致するかを判定します
func (s *SessionRecord) OriginMatches(ip string) bool {
	return s.OriginIP == ip
}

// Touch は最終アクセス日時を更新します
// 過去の時刻では更新せず、更新した場合にtrueを返します
func (s *SessionRecord) Touch(now time.Time) bool {
	if !now.After(s.LastSeenAt) {
		return false
	}
	s.LastSeenAt = now
	return true
}

// ExpiresAt は絶対寿命に達する時刻を返します
func (s *SessionRecord) ExpiresAt(maxAge time.Duration) time.Time {
	return s.StartedAt.Add(maxAge)
}
