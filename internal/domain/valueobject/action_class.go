package valueobject

// ActionClass はレート制限の行動分類を表す値オブジェクト
type ActionClass string

const (
	ActionClassGeneralRequest ActionClass = "general_request"
	ActionClassPageTransition ActionClass = "page_transition"
)

// IsValid は分類が有効かを判定します
func (a ActionClass) IsValid() bool {
	return a == ActionClassGeneralRequest || a == ActionClassPageTransition
}

// String は文字列を返します
func (a ActionClass) String() string {
	return string(a)
}
