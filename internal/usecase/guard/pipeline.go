package guard

import (
	"context"
	"errors"
	"time"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/internal/domain/valueobject"
	accessquery "github.com/julija05/kidseducation-guard/internal/usecase/access/query"
	securitycmd "github.com/julija05/kidseducation-guard/internal/usecase/security/command"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
	"github.com/julija05/kidseducation-guard/pkg/logger"
)

// Request はパイプラインに渡すリクエスト情報です
type Request struct {
	Subject         *entity.Subject
	SessionID       string
	AuthenticatedAt time.Time
	TokenExpiresAt  time.Time
	ClientIP        string
	UserAgent       string
	RawURL          string
	Params          map[string][]string
	Route           valueobject.RouteSpec
	LessonID        int64
	ResourceID      int64
}

// Pipeline はセッション検証・レート制限・行動監視・アクセス判定を順に実行します
// いずれかが拒否した時点で以降の段階は実行しません
type Pipeline struct {
	checkSession     *securitycmd.CheckSessionCommand
	hitRateLimit     *securitycmd.HitRateLimitCommand
	evaluateActivity *securitycmd.EvaluateActivityCommand
	evaluateAccess   *accessquery.EvaluateAccessQuery
	now              func() time.Time
}

// NewPipeline は新しいPipelineを作成します
func NewPipeline(
	checkSession *securitycmd.CheckSessionCommand,
	hitRateLimit *securitycmd.HitRateLimitCommand,
	evaluateActivity *securitycmd.EvaluateActivityCommand,
	evaluateAccess *accessquery.EvaluateAccessQuery,
) *Pipeline {
	return &Pipeline{
		checkSession:     checkSession,
		hitRateLimit:     hitRateLimit,
		evaluateActivity: evaluateActivity,
		evaluateAccess:   evaluateAccess,
		now:              time.Now,
	}
}

// WithClock は時刻の取得元を差し替えます
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Evaluate はリクエストを判定します
// 判定中の時刻は1回だけ取得し、全段階で共有します
func (p *Pipeline) Evaluate(ctx context.Context, req Request) Decision {
	now := p.now()
	decision := p.evaluate(ctx, req, now)

	if !decision.Proceed() {
		logger.Warn(ctx, "guard rejected request",
			"outcome", string(decision.Outcome()),
			"code", string(decision.Err.Code),
			"message", decision.Err.Message,
			"redirect_to", decision.Err.RedirectTo,
			"reasons", reasonStrings(decision.Reasons),
			"subject_id", req.Subject.ID.String(),
			"route", req.Route.Category.String(),
			"url", req.RawURL,
			"ip", req.ClientIP,
			"error", decision.Err.Err,
		)
	} else if len(decision.Reasons) > 0 {
		logger.Warn(ctx, "guard observed suspicious activity",
			"reasons", reasonStrings(decision.Reasons),
			"subject_id", req.Subject.ID.String(),
			"url", req.RawURL,
			"ip", req.ClientIP,
			"user_agent", req.UserAgent,
		)
	}
	return decision
}

func (p *Pipeline) evaluate(ctx context.Context, req Request, now time.Time) Decision {
	// 1. セッション
	if _, err := p.checkSession.Execute(ctx, securitycmd.CheckSessionInput{
		Subject:         req.Subject,
		SessionID:       req.SessionID,
		ClientIP:        req.ClientIP,
		AuthenticatedAt: req.AuthenticatedAt,
		TokenExpiresAt:  req.TokenExpiresAt,
		Now:             now,
	}); err != nil {
		return reject(err)
	}

	// 2. レート制限（一般リクエスト）
	general, err := p.hitRateLimit.Execute(ctx, securitycmd.HitRateLimitInput{
		Subject: req.Subject,
		Class:   valueobject.ActionClassGeneralRequest,
		Now:     now,
	})
	if err != nil {
		return reject(err)
	}
	info := &RateLimitInfo{
		Limit:     general.Limit,
		Remaining: general.Remaining(),
		ResetAt:   general.ResetAt.Unix(),
	}
	if !general.Allowed {
		info.RetryAfter = general.RetryAfter(now)
		return Decision{
			Err:       apperror.NewTooManyRequestsError("too many requests, slow down", info.RetryAfter),
			RateLimit: info,
		}
	}

	// 3. レート制限（ページ遷移、ブロックしない）
	rapid := false
	if req.Route.PageView {
		transitions, err := p.hitRateLimit.Execute(ctx, securitycmd.HitRateLimitInput{
			Subject: req.Subject,
			Class:   valueobject.ActionClassPageTransition,
			Now:     now,
		})
		if err != nil {
			return Decision{Err: toAppError(err), RateLimit: info}
		}
		rapid = transitions.Exceeded
	}

	// 4. 行動監視
	activity, err := p.evaluateActivity.Execute(ctx, securitycmd.EvaluateActivityInput{
		Subject:          req.Subject,
		RawURL:           req.RawURL,
		Params:           req.Params,
		UserAgent:        req.UserAgent,
		ClientIP:         req.ClientIP,
		RapidPageChanges: rapid,
	})
	if err != nil {
		return Decision{Err: toAppError(err), RateLimit: info}
	}
	reasons := activity.Verdict.Reasons()
	if activity.Verdict.Blocked() {
		return Decision{
			Err:       apperror.NewSecurityBlockedError("this request has been blocked"),
			Reasons:   reasons,
			RateLimit: info,
		}
	}

	// 5. アクセス判定
	if _, err := p.evaluateAccess.Execute(ctx, accessquery.EvaluateAccessInput{
		Subject:    req.Subject,
		Category:   req.Route.Category,
		LessonID:   req.LessonID,
		ResourceID: req.ResourceID,
		Now:        now,
	}); err != nil {
		return Decision{Err: toAppError(err), Reasons: reasons, RateLimit: info}
	}

	return Decision{Reasons: reasons, RateLimit: info}
}

func reject(err error) Decision {
	return Decision{Err: toAppError(err)}
}

// toAppError はガード内部の障害をフェイルクローズのエラーに変換します
func toAppError(err error) *apperror.AppError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.NewServiceUnavailableError("access check unavailable", err)
}

func reasonStrings(reasons []valueobject.ReasonCode) []string {
	out := make([]string, len(reasons))
	for i, r := range reasons {
		out[i] = r.String()
	}
	return out
}
