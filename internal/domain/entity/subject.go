package entity

import (
	"github.com/google/uuid"

	"github.com/julija05/kidseducation-guard/internal/domain/valueobject"
)

// Subject はリクエストの主体（認証済み学習者・スタッフ）を表します
// 認証層がリクエストごとに生成し、リクエスト中は変更しません
type Subject struct {
	ID             uuid.UUID
	Role           valueobject.Role
	IsMinorAccount bool
}

// NewSubject は新しいSubjectを作成します
func NewSubject(id uuid.UUID, role valueobject.Role, isMinorAccount bool) *Subject {
	return &Subject{
		ID:             id,
		Role:           role,
		IsMinorAccount: isMinorAccount,
	}
}

// IsMinor は未成年向けの保護対象かを判定します
func (s *Subject) IsMinor() bool {
	return s.IsMinorAccount || s.Role.IsGuardianManaged()
}

// IsStaff はスタッフかを判定します
func (s *Subject) IsStaff() bool {
	return s.Role.IsStaff()
}
