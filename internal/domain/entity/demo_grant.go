package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/julija05/kidseducation-guard/internal/domain/valueobject"
)

// DemoGrantDefaultDuration は体験アクセスのデフォルト有効期間
const DemoGrantDefaultDuration = 7 * 24 * time.Hour

// DemoGrant は体験アクセスの付与を定義します
// 1主体につき1件で、期限切れ後も削除せず「期限切れ」として扱います
type DemoGrant struct {
	SubjectID       uuid.UUID
	ProgramID       int64
	AllowedLessonID int64
	StartedAt       time.Time
	ExpiresAt       time.Time
}

// NewDemoGrant は新しい体験アクセスを作成します
func NewDemoGrant(subjectID uuid.UUID, programID, allowedLessonID int64, now time.Time, duration time.Duration) *DemoGrant {
	if duration <= 0 {
		duration = DemoGrantDefaultDuration
	}
	return &DemoGrant{
		SubjectID:       subjectID,
		ProgramID:       programID,
		AllowedLessonID: allowedLessonID,
		StartedAt:       now,
		ExpiresAt:       now.Add(duration),
	}
}

// ReconstructDemoGrant はDBから体験アクセスを復元します
func ReconstructDemoGrant(subjectID uuid.UUID, programID, allowedLessonID int64, startedAt, expiresAt time.Time) *DemoGrant {
	return &DemoGrant{
		SubjectID:       subjectID,
		ProgramID:       programID,
		AllowedLessonID: allowedLessonID,
		StartedAt:       startedAt,
		ExpiresAt:       expiresAt,
	}
}

// IsExpired は期限切れかを判定します（now > expiresAt）
func (g *DemoGrant) IsExpired(now time.Time) bool {
	return now.After(g.ExpiresAt)
}

// IsActive は有効期間内かを判定します
func (g *DemoGrant) IsActive(now time.Time) bool {
	return !g.IsExpired(now)
}

// State は受講登録がない場合のアクセス状態を返します
func (g *DemoGrant) State(now time.Time) valueobject.AccessState {
	if g.IsExpired(now) {
		return valueobject.AccessStateDemoExpired
	}
	return valueobject.AccessStateDemoActive
}

// AllowsLesson は体験で閲覧可能なレッスンかを判定します
func (g *DemoGrant) AllowsLesson(lessonID int64) bool {
	return g.AllowedLessonID == lessonID
}

// Remaining は残り時間を返します
func (g *DemoGrant) Remaining(now time.Time) time.Duration {
	if g.IsExpired(now) {
		return 0
	}
	return g.ExpiresAt.Sub(now)
}
