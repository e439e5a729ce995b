package request

// CheckTextRequest はテキスト検査リクエスト
type CheckTextRequest struct {
	Text string `json:"text" validate:"required,printable,max=5000"`
}
