package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/julija05/kidseducation-guard/internal/domain/repository"
	"github.com/julija05/kidseducation-guard/internal/infrastructure/database"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
)

const (
	hasAnyEnrollmentSQL = `SELECT EXISTS (SELECT 1 FROM enrollments WHERE subject_id = $1)`

	firstLessonOfSQL = `
SELECT id FROM lessons
WHERE program_id = $1
ORDER BY position, id
LIMIT 1`

	lessonOwnerOfSQL = `SELECT lesson_id FROM lesson_resources WHERE id = $1`
)

// CatalogRepository は受講登録・カタログ参照の実装です
type CatalogRepository struct {
	*database.BaseRepository
}

// NewCatalogRepository は新しいCatalogRepositoryを作成します
func NewCatalogRepository(txManager *database.TxManager) *CatalogRepository {
	return &CatalogRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// HasAnyEnrollment は受講登録の有無を返します
func (r *CatalogRepository) HasAnyEnrollment(ctx context.Context, subjectID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.Querier(ctx).QueryRow(ctx, hasAnyEnrollmentSQL, subjectID).Scan(&exists); err != nil {
		return false, r.HandleError(err)
	}
	return exists, nil
}

// FirstLessonOf はプログラムの並び順で最初のレッスンIDを返します
func (r *CatalogRepository) FirstLessonOf(ctx context.Context, programID int64) (int64, error) {
	var lessonID int64
	if err := r.Querier(ctx).QueryRow(ctx, firstLessonOfSQL, programID).Scan(&lessonID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.NewNotFoundError("program lesson")
		}
		return 0, r.HandleError(err)
	}
	return lessonID, nil
}

// LessonOwnerOf は教材リソースが属するレッスンIDを返します
func (r *CatalogRepository) LessonOwnerOf(ctx context.Context, resourceID int64) (int64, error) {
	var lessonID int64
	if err := r.Querier(ctx).QueryRow(ctx, lessonOwnerOfSQL, resourceID).Scan(&lessonID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.NewNotFoundError("lesson resource")
		}
		return 0, r.HandleError(err)
	}
	return lessonID, nil
}

var _ repository.CatalogReader = (*CatalogRepository)(nil)
