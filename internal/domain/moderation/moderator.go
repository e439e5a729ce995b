package moderation

// Violation はブロック対象ルールへの一致を表します
type Violation struct {
	Category Category
	Message  string
}

// Result はブロック判定の結果を表します
type Result struct {
	Violations []Violation
}

// Violating は違反があるかを判定します
func (r Result) Violating() bool {
	return len(r.Violations) > 0
}

// Categories は違反カテゴリの一覧を返します
func (r Result) Categories() []Category {
	out := make([]Category, len(r.Violations))
	for i, v := range r.Violations {
		out[i] = v.Category
	}
	return out
}

// Field は検査対象の文字列と、その取得元を表します
// 同じ Path が複数回現れることがあります
type Field struct {
	Path string
	Text string
}

// AdvisoryMatch は注意喚起ルールへの一致を表します
type AdvisoryMatch struct {
	Term     string
	Category Category
	Message  string
}

// Moderator はルール表に基づいてテキストを分類します
// 状態を持たず、複数のゴルーチンから同時に使用できます
type Moderator struct {
	blocking []Rule
	advisory []Rule
}

// NewModerator はルール表からModeratorを作成します
func NewModerator(rules []Rule) *Moderator {
	m := &Moderator{}
	for _, r := range rules {
		switch r.Kind {
		case KindContact, KindInjection:
			m.blocking = append(m.blocking, r)
		case KindAdvisory:
			m.advisory = append(m.advisory, r)
		}
	}
	return m
}

// NewDefaultModerator は既定のルール表でModeratorを作成します
func NewDefaultModerator() *Moderator {
	return NewModerator(DefaultRules())
}

// CheckText はブロック対象の全ルールを評価し、一致したカテゴリをすべて返します
func (m *Moderator) CheckText(text string) Result {
	return evaluate(m.blocking, text)
}

// Advise は注意喚起ルールに一致した語を返します
func (m *Moderator) Advise(text string) []AdvisoryMatch {
	var matches []AdvisoryMatch
	for _, r := range m.advisory {
		if r.Matcher.Match(text) {
			matches = append(matches, AdvisoryMatch{
				Term:     r.Matcher.Pattern(),
				Category: r.Category,
				Message:  r.Message,
			})
		}
	}
	return matches
}

// AdvisoryRules はクライアントへ配布する注意喚起ルールを返します
func (m *Moderator) AdvisoryRules() []AdvisoryMatch {
	out := make([]AdvisoryMatch, 0, len(m.advisory))
	for _, r := range m.advisory {
		out = append(out, AdvisoryMatch{
			Term:     r.Matcher.Pattern(),
			Category: r.Category,
			Message:  r.Message,
		})
	}
	return out
}

func evaluate(rules []Rule, text string) Result {
	var result Result
	if text == "" {
		return result
	}
	seen := make(map[Category]bool)
	for _, r := range rules {
		if seen[r.Category] || !r.Matcher.Match(text) {
			continue
		}
		seen[r.Category] = true
		result.Violations = append(result.Violations, Violation{
			Category: r.Category,
			Message:  r.Message,
		})
	}
	return result
}
