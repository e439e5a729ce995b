package entity

import "github.com/julija05/kidseducation-guard/internal/domain/valueobject"

// ActivityVerdict はリクエスト単位の行動判定結果を表します
// 永続化はせず、ログと通知にのみ使用します
type ActivityVerdict struct {
	reasons []valueobject.ReasonCode
}

// NewActivityVerdict は空の判定結果を作成します
func NewActivityVerdict() *ActivityVerdict {
	return &ActivityVerdict{}
}

// Add はシグナルを追加します（重複は無視）
func (v *ActivityVerdict) Add(reason valueobject.ReasonCode) {
	if v.Has(reason) {
		return
	}
	v.reasons = append(v.reasons, reason)
}

// Has はシグナルが含まれるかを判定します
func (v *ActivityVerdict) Has(reason valueobject.ReasonCode) bool {
	for _, r := range v.reasons {
		if r == reason {
			return true
		}
	}
	return false
}

// Reasons は検出順のシグナル一覧を返します
func (v *ActivityVerdict) Reasons() []valueobject.ReasonCode {
	out := make([]valueobject.ReasonCode, len(v.reasons))
	copy(out, v.reasons)
	return out
}

// ReasonStrings はログ出力用の文字列一覧を返します
func (v *ActivityVerdict) ReasonStrings() []string {
	out := make([]string, len(v.reasons))
	for i, r := range v.reasons {
		out[i] = r.String()
	}
	return out
}

// Suspicious はいずれかのシグナルが検出されたかを判定します
func (v *ActivityVerdict) Suspicious() bool {
	return len(v.reasons) > 0
}

// Blocked はブロック対象のシグナルが含まれるかを判定します
func (v *ActivityVerdict) Blocked() bool {
	for _, r := range v.reasons {
		if r.IsBlocking() {
			return true
		}
	}
	return false
}
