package request

// StartDemoRequest は体験開始リクエスト
type StartDemoRequest struct {
	ProgramID int64 `param:"programId" validate:"gt=0"`
}
