package valueobject

import "errors"

var (
	ErrInvalidRole = errors.New("invalid role")
)

// Role はアカウントのロールを表す値オブジェクト
type Role string

const (
	RoleStudent         Role = "student"
	RoleGuardianManaged Role = "guardian_managed"
	RoleGuardian        Role = "guardian"
	RoleStaff           Role = "staff"
)

// NewRole は文字列からRoleを生成します
func NewRole(role string) (Role, error) {
	r := Role(role)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// IsValid はロールが有効かを判定します
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleGuardianManaged, RoleGuardian, RoleStaff:
		return true
	default:
		return false
	}
}

// String は文字列を返します
func (r Role) String() string {
	return string(r)
}

// IsStaff はスタッフロールかを判定します
func (r Role) IsStaff() bool {
	return r == RoleStaff
}

// IsGuardianManaged は保護者管理アカウントかを判定します
func (r Role) IsGuardianManaged() bool {
	return r == RoleGuardianManaged
}
