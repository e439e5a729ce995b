package valueobject

import "errors"

var (
	ErrInvalidRouteCategory = errors.New("invalid route category")
)

// RouteCategory はルーティング層が各ルートに付与する分類タグ
// アクセスゲートはルート名ではなくこの分類で判定します
type RouteCategory string

const (
	RouteCategoryGeneral              RouteCategory = "general"
	RouteCategoryDemo                 RouteCategory = "demo"
	RouteCategoryDemoInitiation       RouteCategory = "demo_initiation"
	RouteCategoryLessonDetail         RouteCategory = "lesson_detail"
	RouteCategoryLessonResource       RouteCategory = "lesson_resource"
	RouteCategoryProgramDashboard     RouteCategory = "program_dashboard"
	RouteCategoryEnrollmentAction     RouteCategory = "enrollment_action"
	RouteCategoryEnrollmentInitiation RouteCategory = "enrollment_initiation"
	RouteCategoryQuiz                 RouteCategory = "quiz"
)

// NewRouteCategory は文字列からRouteCategoryを生成します
func NewRouteCategory(category string) (RouteCategory, error) {
	c := RouteCategory(category)
	if !c.IsValid() {
		return "", ErrInvalidRouteCategory
	}
	return c, nil
}

// IsValid は分類が有効かを判定します
func (c RouteCategory) IsValid() bool {
	switch c {
	case RouteCategoryGeneral, RouteCategoryDemo, RouteCategoryDemoInitiation,
		RouteCategoryLessonDetail, RouteCategoryLessonResource, RouteCategoryProgramDashboard,
		RouteCategoryEnrollmentAction, RouteCategoryEnrollmentInitiation, RouteCategoryQuiz:
		return true
	default:
		return false
	}
}

// String は文字列を返します
func (c RouteCategory) String() string {
	return string(c)
}

// IsDemoScoped は体験モード用のルートかを判定します（体験開始ルートを含む）
func (c RouteCategory) IsDemoScoped() bool {
	return c == RouteCategoryDemo || c == RouteCategoryDemoInitiation
}

// IsLessonScoped はレッスン単位で許可判定するルートかを判定します
func (c RouteCategory) IsLessonScoped() bool {
	return c == RouteCategoryLessonDetail || c == RouteCategoryLessonResource
}

// RequiresEnrollment は受講登録が前提のルートかを判定します
func (c RouteCategory) RequiresEnrollment() bool {
	switch c {
	case RouteCategoryLessonDetail, RouteCategoryLessonResource, RouteCategoryProgramDashboard,
		RouteCategoryEnrollmentAction, RouteCategoryQuiz:
		return true
	default:
		return false
	}
}

// IsUnrestricted はどのアクセス状態でも許可されるルートかを判定します
func (c RouteCategory) IsUnrestricted() bool {
	return c == RouteCategoryGeneral || c == RouteCategoryEnrollmentInitiation
}

// RouteSpec はルートに付与するガード用メタデータ
type RouteSpec struct {
	Category RouteCategory
	// PageView はページ遷移としてカウントするかを示します
	PageView bool
}
