package response

import (
	"time"

	accesscmd "github.com/julija05/kidseducation-guard/internal/usecase/access/command"
	accessqry "github.com/julija05/kidseducation-guard/internal/usecase/access/query"
)

// DemoGrantResponse は体験アクセス情報レスポンス
type DemoGrantResponse struct {
	ProgramID       int64     `json:"program_id"`
	AllowedLessonID int64     `json:"allowed_lesson_id"`
	StartedAt       time.Time `json:"started_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// StartDemoResponse は体験開始レスポンス
type StartDemoResponse struct {
	Demo    DemoGrantResponse `json:"demo"`
	Created bool              `json:"created"`
}

// DemoStatusResponse は体験状態レスポンス
type DemoStatusResponse struct {
	State            string             `json:"state"`
	Demo             *DemoGrantResponse `json:"demo,omitempty"`
	RemainingSeconds int64              `json:"remaining_seconds"`
}

// ToStartDemoResponse は体験開始の出力をレスポンスに変換します
func ToStartDemoResponse(output *accesscmd.StartDemoOutput) StartDemoResponse {
	g := output.Grant
	return StartDemoResponse{
		Demo: DemoGrantResponse{
			ProgramID:       g.ProgramID,
			AllowedLessonID: g.AllowedLessonID,
			StartedAt:       g.StartedAt,
			ExpiresAt:       g.ExpiresAt,
		},
		Created: output.Created,
	}
}

// ToDemoStatusResponse は体験状態の出力をレスポンスに変換します
func ToDemoStatusResponse(output *accessqry.GetDemoStatusOutput) DemoStatusResponse {
	resp := DemoStatusResponse{
		State:            output.State.String(),
		RemainingSeconds: int64(output.Remaining.Seconds()),
	}
	if g := output.Grant; g != nil {
		resp.Demo = &DemoGrantResponse{
			ProgramID:       g.ProgramID,
			AllowedLessonID: g.AllowedLessonID,
			StartedAt:       g.StartedAt,
			ExpiresAt:       g.ExpiresAt,
		}
	}
	return resp
}
