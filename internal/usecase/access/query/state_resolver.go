package query

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/internal/domain/repository"
	"github.com/julija05/kidseducation-guard/internal/domain/valueobject"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
)

// stateResolver は主体のアクセス状態を導出します
// 優先順位は Enrolled > DemoActive/DemoExpired > NoAccess です
type stateResolver struct {
	demoRepo repository.DemoGrantRepository
	catalog  repository.CatalogReader
}

func (r stateResolver) resolve(ctx context.Context, subjectID uuid.UUID, now time.Time) (valueobject.AccessState, *entity.DemoGrant, error) {
	enrolled, err := r.catalog.HasAnyEnrollment(ctx, subjectID)
	if err != nil {
		return "", nil, err
	}
	if enrolled {
		return valueobject.AccessStateEnrolled, nil, nil
	}

	grant, err := r.demoRepo.FindBySubjectID(ctx, subjectID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return valueobject.AccessStateNoAccess, nil, nil
		}
		return "", nil, err
	}
	return grant.State(now), grant, nil
}
