package query

import (
	"github.com/julija05/kidseducation-guard/internal/domain/moderation"
)

// CheckTextInput はテキスト検査の入力を定義します
type CheckTextInput struct {
	Text string
}

// CheckTextOutput はテキスト検査の出力を定義します
type CheckTextOutput struct {
	Violating  bool
	Violations []moderation.Violation
	Advisories []moderation.AdvisoryMatch
}

// CheckTextQuery はテキスト投稿のサーバー側検査クエリです
type CheckTextQuery struct {
	moderator *moderation.Moderator
}

// NewCheckTextQuery は新しいCheckTextQueryを作成します
func NewCheckTextQuery(moderator *moderation.Moderator) *CheckTextQuery {
	return &CheckTextQuery{moderator: moderator}
}

// Execute はブロック対象の全カテゴリを検査します
// 注意喚起は判定に影響せず、参考情報として返します
func (q *CheckTextQuery) Execute(input CheckTextInput) *CheckTextOutput {
	result := q.moderator.CheckText(input.Text)
	return &CheckTextOutput{
		Violating:  result.Violating(),
		Violations: result.Violations,
		Advisories: q.moderator.Advise(input.Text),
	}
}

// ExecuteFields は複数フィールドをまとめて検査し、違反したフィールドごとの結果を返します
// 同じパスのフィールドはすべて検査し、違反を追記します
func (q *CheckTextQuery) ExecuteFields(fields []moderation.Field) map[string][]moderation.Violation {
	out := make(map[string][]moderation.Violation)
	for _, f := range fields {
		if result := q.moderator.CheckText(f.Text); result.Violating() {
			out[f.Path] = append(out[f.Path], result.Violations...)
		}
	}
	return out
}
