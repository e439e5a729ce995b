package query

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/internal/domain/repository"
	"github.com/julija05/kidseducation-guard/internal/domain/valueobject"
)

// GetDemoStatusInput は体験状態取得の入力を定義します
type GetDemoStatusInput struct {
	SubjectID uuid.UUID
	Now       time.Time
}

// GetDemoStatusOutput は体験状態取得の出力を定義します
type GetDemoStatusOutput struct {
	State     valueobject.AccessState
	Grant     *entity.DemoGrant // 体験を開始したことがない場合はnil
	Remaining time.Duration
}

// GetDemoStatusQuery は体験状態取得クエリです
type GetDemoStatusQuery struct {
	resolver stateResolver
}

// NewGetDemoStatusQuery は新しいGetDemoStatusQueryを作成します
func NewGetDemoStatusQuery(demoRepo repository.DemoGrantRepository, catalog repository.CatalogReader) *GetDemoStatusQuery {
	return &GetDemoStatusQuery{
		resolver: stateResolver{demoRepo: demoRepo, catalog: catalog},
	}
}

// Execute は体験状態を取得します
func (q *GetDemoStatusQuery) Execute(ctx context.Context, input GetDemoStatusInput) (*GetDemoStatusOutput, error) {
	state, grant, err := q.resolver.resolve(ctx, input.SubjectID, input.Now)
	if err != nil {
		return nil, err
	}

	out := &GetDemoStatusOutput{State: state, Grant: grant}
	if grant != nil {
		out.Remaining = grant.Remaining(input.Now)
	}
	return out, nil
}
