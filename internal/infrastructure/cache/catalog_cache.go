package cache

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/julija05/kidseducation-guard/internal/domain/repository"
)

// CachedCatalogReader はカタログの静的な参照をRedisにキャッシュします
// 受講登録の有無は状態遷移に直結するため常にDBを参照します
type CachedCatalogReader struct {
	next  repository.CatalogReader
	cache *Cache
}

// NewCachedCatalogReader は新しいCachedCatalogReaderを作成します
func NewCachedCatalogReader(next repository.CatalogReader, cache *Cache) *CachedCatalogReader {
	return &CachedCatalogReader{next: next, cache: cache}
}

// HasAnyEnrollment は受講登録の有無を返します（キャッシュしません）
func (r *CachedCatalogReader) HasAnyEnrollment(ctx context.Context, subjectID uuid.UUID) (bool, error) {
	return r.next.HasAnyEnrollment(ctx, subjectID)
}

// FirstLessonOf はプログラムの最初のレッスンIDを返します
func (r *CachedCatalogReader) FirstLessonOf(ctx context.Context, programID int64) (int64, error) {
	key := "first_lesson:" + strconv.FormatInt(programID, 10)
	return r.cache.GetOrLoadInt64(ctx, key, func() (int64, error) {
		return r.next.FirstLessonOf(ctx, programID)
	})
}

// LessonOwnerOf は教材リソースが属するレッスンIDを返します
func (r *CachedCatalogReader) LessonOwnerOf(ctx context.Context, resourceID int64) (int64, error) {
	key := "lesson_owner:" + strconv.FormatInt(resourceID, 10)
	return r.cache.GetOrLoadInt64(ctx, key, func() (int64, error) {
		return r.next.LessonOwnerOf(ctx, resourceID)
	})
}
