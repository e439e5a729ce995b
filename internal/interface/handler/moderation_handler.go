package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/julija05/kidseducation-guard/internal/interface/dto/request"
	"github.com/julija05/kidseducation-guard/internal/interface/dto/response"
	"github.com/julija05/kidseducation-guard/internal/interface/presenter"
	modqry "github.com/julija05/kidseducation-guard/internal/usecase/moderation/query"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
)

// ModerationHandler はテキスト検査関連のHTTPハンドラーです
type ModerationHandler struct {
	checkTextQuery        *modqry.CheckTextQuery
	getAdvisoryRulesQuery *modqry.GetAdvisoryRulesQuery
}

// NewModerationHandler は新しいModerationHandlerを作成します
func NewModerationHandler(checkTextQuery *modqry.CheckTextQuery, getAdvisoryRulesQuery *modqry.GetAdvisoryRulesQuery) *ModerationHandler {
	return &ModerationHandler{
		checkTextQuery:        checkTextQuery,
		getAdvisoryRulesQuery: getAdvisoryRulesQuery,
	}
}

// Check はテキストを検査し、違反と注意喚起を返します
// 違反があっても200で結果を返します（投稿の拒否は投稿先のルートで行います）
// POST /api/v1/moderation/check
func (h *ModerationHandler) Check(c echo.Context) error {
	var req request.CheckTextRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidationError("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output := h.checkTextQuery.Execute(modqry.CheckTextInput{Text: req.Text})
	return presenter.OK(c, response.ToCheckTextResponse(output))
}

// AdvisoryRules はクライアント側で使う注意喚起ルールを返します
// GET /api/v1/moderation/advisory-rules
func (h *ModerationHandler) AdvisoryRules(c echo.Context) error {
	return presenter.OK(c, response.ToAdvisoryResponses(h.getAdvisoryRulesQuery.Execute()))
}
