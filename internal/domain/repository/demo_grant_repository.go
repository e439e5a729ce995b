package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
)

// DemoGrantRepository は体験アクセスリポジトリインターフェースを定義します
type DemoGrantRepository interface {
	// FindBySubjectID は主体の体験アクセスを取得します（存在しない場合はNotFound）
	FindBySubjectID(ctx context.Context, subjectID uuid.UUID) (*entity.DemoGrant, error)

	// CreateIfAbsent は体験アクセスを作成し、保存済みの記録を返します
	// 既に記録がある場合は作成せず既存の記録を返します
	CreateIfAbsent(ctx context.Context, grant *entity.DemoGrant) (stored *entity.DemoGrant, created bool, err error)
}
