package response

import (
	"github.com/julija05/kidseducation-guard/internal/domain/moderation"
	modqry "github.com/julija05/kidseducation-guard/internal/usecase/moderation/query"
)

// ViolationResponse は違反情報レスポンス
type ViolationResponse struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// AdvisoryResponse は注意喚起レスポンス
type AdvisoryResponse struct {
	Term     string `json:"term"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// CheckTextResponse はテキスト検査レスポンス
type CheckTextResponse struct {
	Allowed    bool                `json:"allowed"`
	Violations []ViolationResponse `json:"violations"`
	Advisories []AdvisoryResponse  `json:"advisories"`
}

// ToCheckTextResponse はテキスト検査の出力をレスポンスに変換します
func ToCheckTextResponse(output *modqry.CheckTextOutput) CheckTextResponse {
	violations := make([]ViolationResponse, 0, len(output.Violations))
	for _, v := range output.Violations {
		violations = append(violations, ViolationResponse{
			Category: v.Category.String(),
			Message:  v.Message,
		})
	}
	return CheckTextResponse{
		Allowed:    !output.Violating,
		Violations: violations,
		Advisories: ToAdvisoryResponses(output.Advisories),
	}
}

// ToAdvisoryResponses は注意喚起の一覧をレスポンスに変換します
func ToAdvisoryResponses(matches []moderation.AdvisoryMatch) []AdvisoryResponse {
	out := make([]AdvisoryResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, AdvisoryResponse{
			Term:     m.Term,
			Category: m.Category.String(),
			Message:  m.Message,
		})
	}
	return out
}
