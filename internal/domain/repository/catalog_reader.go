package repository

import (
	"context"

	"github.com/google/uuid"
)

// CatalogReader は受講登録・カタログ情報の参照インターフェースを定義します
type CatalogReader interface {
	// HasAnyEnrollment は主体がいずれかのプログラムに受講登録しているかを判定します
	HasAnyEnrollment(ctx context.Context, subjectID uuid.UUID) (bool, error)

	// FirstLessonOf はプログラムの並び順で最初のレッスンIDを返します
	FirstLessonOf(ctx context.Context, programID int64) (int64, error)

	// LessonOwnerOf は教材リソースが属するレッスンIDを返します
	LessonOwnerOf(ctx context.Context, resourceID int64) (int64, error)
}
