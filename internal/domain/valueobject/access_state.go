package valueobject

// AccessState は受講登録・体験アクセスの状態
type AccessState string

const (
	AccessStateNoAccess    AccessState = "no_access"
	AccessStateDemoActive  AccessState = "demo_active"
	AccessStateDemoExpired AccessState = "demo_expired"
	AccessStateEnrolled    AccessState = "enrolled"
)

// String は文字列を返します
func (s AccessState) String() string {
	return string(s)
}

// HasDemo は体験付与の記録がある状態かを判定します
func (s AccessState) HasDemo() bool {
	return s == AccessStateDemoActive || s == AccessStateDemoExpired
}
