package query

import (
	"context"
	"time"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/internal/domain/repository"
	"github.com/julija05/kidseducation-guard/internal/domain/valueobject"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
)

const (
	msgEnrollmentRequired = "Enroll in this program to access its lessons."
	msgLessonNotInDemo    = "This lesson is not part of your demo. Enroll to unlock the full program."
	msgDemoFeatureLocked  = "This feature is not available during a demo. Enroll to unlock it."
	msgDemoExpired        = "Your demo has ended. Enroll to continue learning."
	msgNoActiveDemo       = "Start a demo from the catalog to try a lesson."
)

// RedirectPaths はアクセス拒否時のリダイレクト先です
type RedirectPaths struct {
	Catalog       string
	DemoDashboard string
	DemoExpired   string
}

// EvaluateAccessInput はアクセス判定の入力を定義します
type EvaluateAccessInput struct {
	Subject    *entity.Subject
	Category   valueobject.RouteCategory
	LessonID   int64 // lesson_detail のとき
	ResourceID int64 // lesson_resource のとき
	Now        time.Time
}

// EvaluateAccessOutput はアクセス判定の出力を定義します
type EvaluateAccessOutput struct {
	State   valueobject.AccessState
	Skipped bool // 状態の参照なしで許可した場合
}

// EvaluateAccessQuery はルート単位のアクセス判定クエリです
// 拒否はリダイレクト先付きの ACCESS_DENIED エラーとして返します
type EvaluateAccessQuery struct {
	resolver stateResolver
	catalog  repository.CatalogReader
	paths    RedirectPaths
}

// NewEvaluateAccessQuery は新しいEvaluateAccessQueryを作成します
func NewEvaluateAccessQuery(
	demoRepo repository.DemoGrantRepository,
	catalog repository.CatalogReader,
	paths RedirectPaths,
) *EvaluateAccessQuery {
	return &EvaluateAccessQuery{
		resolver: stateResolver{demoRepo: demoRepo, catalog: catalog},
		catalog:  catalog,
		paths:    paths,
	}
}

// Execute はアクセス判定を実行します
func (q *EvaluateAccessQuery) Execute(ctx context.Context, input EvaluateAccessInput) (*EvaluateAccessOutput, error) {
	if input.Subject.IsStaff() || input.Category.IsUnrestricted() {
		return &EvaluateAccessOutput{Skipped: true}, nil
	}

	state, grant, err := q.resolver.resolve(ctx, input.Subject.ID, input.Now)
	if err != nil {
		return nil, err
	}

	out := &EvaluateAccessOutput{State: state}
	switch state {
	case valueobject.AccessStateEnrolled:
		return out, nil
	case valueobject.AccessStateDemoActive:
		return out, q.evaluateDemoActive(ctx, grant, input)
	case valueobject.AccessStateDemoExpired:
		if input.Category.IsDemoScoped() {
			return out, apperror.NewAccessDeniedError(q.paths.DemoExpired, msgDemoExpired)
		}
		return out, q.evaluateNoAccess(input.Category)
	default:
		return out, q.evaluateNoAccess(input.Category)
	}
}

func (q *EvaluateAccessQuery) evaluateDemoActive(ctx context.Context, grant *entity.DemoGrant, input EvaluateAccessInput) error {
	switch input.Category {
	case valueobject.RouteCategoryDemo, valueobject.RouteCategoryDemoInitiation:
		return nil
	case valueobject.RouteCategoryLessonDetail:
		if grant.AllowsLesson(input.LessonID) {
			return nil
		}
		return apperror.NewAccessDeniedError(q.paths.DemoDashboard, msgLessonNotInDemo)
	case valueobject.RouteCategoryLessonResource:
		lessonID, err := q.catalog.LessonOwnerOf(ctx, input.ResourceID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewAccessDeniedError(q.paths.DemoDashboard, msgLessonNotInDemo)
			}
			return err
		}
		if grant.AllowsLesson(lessonID) {
			return nil
		}
		return apperror.NewAccessDeniedError(q.paths.DemoDashboard, msgLessonNotInDemo)
	case valueobject.RouteCategoryProgramDashboard,
		valueobject.RouteCategoryEnrollmentAction,
		valueobject.RouteCategoryQuiz:
		return apperror.NewAccessDeniedError(q.paths.Catalog, msgDemoFeatureLocked)
	default:
		return nil
	}
}

func (q *EvaluateAccessQuery) evaluateNoAccess(category valueobject.RouteCategory) error {
	switch {
	case category == valueobject.RouteCategoryDemo:
		return apperror.NewAccessDeniedError(q.paths.Catalog, msgNoActiveDemo)
	case category.RequiresEnrollment():
		return apperror.NewAccessDeniedError(q.paths.Catalog, msgEnrollmentRequired)
	default:
		return nil
	}
}
