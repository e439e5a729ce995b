package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/julija05/kidseducation-guard/internal/interface/dto/request"
	"github.com/julija05/kidseducation-guard/internal/interface/dto/response"
	"github.com/julija05/kidseducation-guard/internal/interface/middleware"
	"github.com/julija05/kidseducation-guard/internal/interface/presenter"
	accesscmd "github.com/julija05/kidseducation-guard/internal/usecase/access/command"
	accessqry "github.com/julija05/kidseducation-guard/internal/usecase/access/query"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
)

// DemoHandler は体験アクセス関連のHTTPハンドラーです
type DemoHandler struct {
	startDemoCommand   *accesscmd.StartDemoCommand
	getDemoStatusQuery *accessqry.GetDemoStatusQuery
	now                func() time.Time
}

// NewDemoHandler は新しいDemoHandlerを作成します
func NewDemoHandler(
	startDemoCommand *accesscmd.StartDemoCommand,
	getDemoStatusQuery *accessqry.GetDemoStatusQuery,
) *DemoHandler {
	return &DemoHandler{
		startDemoCommand:   startDemoCommand,
		getDemoStatusQuery: getDemoStatusQuery,
		now:                time.Now,
	}
}

// StartDemo は体験アクセスを開始します
// POST /api/v1/programs/:programId/demo
func (h *DemoHandler) StartDemo(c echo.Context) error {
	subject := middleware.GetSubject(c)
	if subject == nil {
		return apperror.NewUnauthorizedError("authentication required")
	}

	var req request.StartDemoRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidationError("invalid program id", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.startDemoCommand.Execute(c.Request().Context(), accesscmd.StartDemoInput{
		SubjectID: subject.ID,
		ProgramID: req.ProgramID,
		Now:       h.now(),
	})
	if err != nil {
		return err
	}

	if output.Created {
		return presenter.Created(c, response.ToStartDemoResponse(output))
	}
	return presenter.OK(c, response.ToStartDemoResponse(output))
}

// GetStatus は現在の体験状態を返します
// GET /api/v1/me/demo
func (h *DemoHandler) GetStatus(c echo.Context) error {
	subject := middleware.GetSubject(c)
	if subject == nil {
		return apperror.NewUnauthorizedError("authentication required")
	}

	output, err := h.getDemoStatusQuery.Execute(c.Request().Context(), accessqry.GetDemoStatusInput{
		SubjectID: subject.ID,
		Now:       h.now(),
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToDemoStatusResponse(output))
}
