package query

import (
	"github.com/julija05/kidseducation-guard/internal/domain/moderation"
)

// GetAdvisoryRulesQuery はクライアント向け注意喚起ルールの取得クエリです
type GetAdvisoryRulesQuery struct {
	moderator *moderation.Moderator
}

// NewGetAdvisoryRulesQuery は新しいGetAdvisoryRulesQueryを作成します
func NewGetAdvisoryRulesQuery(moderator *moderation.Moderator) *GetAdvisoryRulesQuery {
	return &GetAdvisoryRulesQuery{moderator: moderator}
}

// Execute は注意喚起ルールの一覧を返します
func (q *GetAdvisoryRulesQuery) Execute() []moderation.AdvisoryMatch {
	return q.moderator.AdvisoryRules()
}
