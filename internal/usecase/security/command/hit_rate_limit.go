package command

import (
	"context"
	"time"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/internal/domain/repository"
	"github.com/julija05/kidseducation-guard/internal/domain/valueobject"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
)

// RateLimitPolicy はレート制限の上限を定義します
type RateLimitPolicy struct {
	Window                       time.Duration
	GeneralLimit                 int
	MinorGeneralLimit            int
	MinorPageTransitionThreshold int
}

// HitRateLimitInput はレート制限カウントの入力を定義します
type HitRateLimitInput struct {
	Subject *entity.Subject
	Class   valueobject.ActionClass
	Now     time.Time
}

// HitRateLimitOutput はレート制限カウントの出力を定義します
type HitRateLimitOutput struct {
	Counted  bool
	Allowed  bool
	Exceeded bool // しきい値を超えた（ページ遷移はブロックしない）
	Count    int
	Limit    int
	ResetAt  time.Time
}

// Remaining は残り回数を返します
func (o *HitRateLimitOutput) Remaining() int {
	if o.Count >= o.Limit {
		return 0
	}
	return o.Limit - o.Count
}

// RetryAfter は次のウィンドウまでの秒数を返します（切り上げ）
func (o *HitRateLimitOutput) RetryAfter(now time.Time) int {
	d := o.ResetAt.Sub(now)
	if d <= 0 {
		return 1
	}
	return int((d + time.Second - 1) / time.Second)
}

// HitRateLimitCommand は行動分類ごとのカウンターを加算するコマンドです
type HitRateLimitCommand struct {
	store  repository.RateLimitStore
	policy RateLimitPolicy
}

// NewHitRateLimitCommand は新しいHitRateLimitCommandを作成します
func NewHitRateLimitCommand(store repository.RateLimitStore, policy RateLimitPolicy) *HitRateLimitCommand {
	return &HitRateLimitCommand{
		store:  store,
		policy: policy,
	}
}

// Execute はカウンターを加算し上限を判定します
func (c *HitRateLimitCommand) Execute(ctx context.Context, input HitRateLimitInput) (*HitRateLimitOutput, error) {
	minor := input.Subject.IsMinor()

	var limit int
	switch input.Class {
	case valueobject.ActionClassGeneralRequest:
		limit = c.policy.GeneralLimit
		if minor {
			limit = c.policy.MinorGeneralLimit
		}
	case valueobject.ActionClassPageTransition:
		// 未成年以外はページ遷移を数えない
		if !minor {
			return &HitRateLimitOutput{Allowed: true}, nil
		}
		limit = c.policy.MinorPageTransitionThreshold
	default:
		return nil, apperror.NewInvalidRequestError("unknown action class: " + input.Class.String())
	}

	key := entity.BucketKey{Class: input.Class, SubjectID: input.Subject.ID}
	bucket, err := c.store.Hit(ctx, key, c.policy.Window, input.Now)
	if err != nil {
		return nil, apperror.NewServiceUnavailableError("rate limit store unavailable", err)
	}

	exceeded := bucket.Count > limit
	return &HitRateLimitOutput{
		Counted:  true,
		Allowed:  !exceeded || input.Class == valueobject.ActionClassPageTransition,
		Exceeded: exceeded,
		Count:    bucket.Count,
		Limit:    limit,
		ResetAt:  bucket.ResetAt(c.policy.Window),
	}, nil
}
