package valueobject

// ReasonCode は行動監視で検出したシグナルの種別
type ReasonCode string

const (
	ReasonPathProbe           ReasonCode = "path_probe"
	ReasonScriptInjection     ReasonCode = "script_injection"
	ReasonRapidPageChanges    ReasonCode = "rapid_page_changes"
	ReasonSuspiciousUserAgent ReasonCode = "suspicious_user_agent"
)

// IsBlocking は単独でリクエストをブロックするシグナルかを判定します
func (r ReasonCode) IsBlocking() bool {
	return r == ReasonPathProbe || r == ReasonScriptInjection
}

// String は文字列を返します
func (r ReasonCode) String() string {
	return string(r)
}
