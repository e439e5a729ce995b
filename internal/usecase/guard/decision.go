package guard

import (
	"github.com/julija05/kidseducation-guard/internal/domain/valueobject"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
)

// Outcome はパイプラインの判定種別です
type Outcome string

const (
	OutcomeProceed  Outcome = "proceed"
	OutcomeRedirect Outcome = "redirect"
	OutcomeReject   Outcome = "reject"
)

// RateLimitInfo はレスポンスヘッダー用のレート制限情報です
type RateLimitInfo struct {
	Limit      int
	Remaining  int
	ResetAt    int64 // Unix秒
	RetryAfter int   // 秒（拒否時のみ）
}

// Decision はリクエスト1件に対するパイプラインの判定です
type Decision struct {
	Err       *apperror.AppError // proceed の場合はnil
	Reasons   []valueobject.ReasonCode
	RateLimit *RateLimitInfo
}

// Outcome は判定種別を返します
func (d Decision) Outcome() Outcome {
	switch {
	case d.Err == nil:
		return OutcomeProceed
	case d.Err.IsRedirect():
		return OutcomeRedirect
	default:
		return OutcomeReject
	}
}

// Proceed はリクエストを通過させるかを判定します
func (d Decision) Proceed() bool {
	return d.Err == nil
}

// Target はリダイレクト先を返します
func (d Decision) Target() string {
	if d.Err == nil {
		return ""
	}
	return d.Err.RedirectTo
}

// Status はHTTPステータスを返します（proceedでは0）
func (d Decision) Status() int {
	if d.Err == nil {
		return 0
	}
	return d.Err.HTTPStatus
}

// Message は利用者向けメッセージを返します
func (d Decision) Message() string {
	if d.Err == nil {
		return ""
	}
	return d.Err.Message
}
