package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/internal/domain/repository"
	"github.com/julija05/kidseducation-guard/internal/infrastructure/database"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
)

const (
	insertDemoGrantSQL = `
INSERT INTO demo_grants (subject_id, program_id, allowed_lesson_id, started_at, expires_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (subject_id) DO NOTHING
RETURNING subject_id, program_id, allowed_lesson_id, started_at, expires_at`

	selectDemoGrantSQL = `
SELECT subject_id, program_id, allowed_lesson_id, started_at, expires_at
FROM demo_grants
WHERE subject_id = $1`
)

// DemoGrantRepository は体験アクセスリポジトリの実装です
type DemoGrantRepository struct {
	*database.BaseRepository
}

// NewDemoGrantRepository は新しいDemoGrantRepositoryを作成します
func NewDemoGrantRepository(txManager *database.TxManager) *DemoGrantRepository {
	return &DemoGrantRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// FindBySubjectID は主体の体験アクセスを取得します
func (r *DemoGrantRepository) FindBySubjectID(ctx context.Context, subjectID uuid.UUID) (*entity.DemoGrant, error) {
	grant, err := scanDemoGrant(r.Querier(ctx).QueryRow(ctx, selectDemoGrantSQL, subjectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("demo grant")
		}
		return nil, r.HandleError(err)
	}
	return grant, nil
}

// CreateIfAbsent は体験アクセスを作成します
// 同時に作成された場合は先に挿入された1件に収束します
func (r *DemoGrantRepository) CreateIfAbsent(ctx context.Context, grant *entity.DemoGrant) (*entity.DemoGrant, bool, error) {
	querier := r.Querier(ctx)

	stored, err := scanDemoGrant(querier.QueryRow(ctx, insertDemoGrantSQL,
		grant.SubjectID,
		grant.ProgramID,
		grant.AllowedLessonID,
		grant.StartedAt,
		grant.ExpiresAt,
	))
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, r.HandleError(err)
	}

	existing, err := r.FindBySubjectID(ctx, grant.SubjectID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func scanDemoGrant(row pgx.Row) (*entity.DemoGrant, error) {
	var (
		subjectID       uuid.UUID
		programID       int64
		allowedLessonID int64
		startedAt       time.Time
		expiresAt       time.Time
	)
	if err := row.Scan(&subjectID, &programID, &allowedLessonID, &startedAt, &expiresAt); err != nil {
		return nil, err
	}
	return entity.ReconstructDemoGrant(subjectID, programID, allowedLessonID, startedAt, expiresAt), nil
}

var _ repository.DemoGrantRepository = (*DemoGrantRepository)(nil)
