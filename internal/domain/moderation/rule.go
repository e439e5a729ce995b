package moderation

import (
	"regexp"
	"strings"
)

// Category は違反カテゴリを表します
type Category string

const (
	CategoryPhoneNumber           Category = "phone_number"
	CategoryEmailAddress          Category = "email_address"
	CategoryExternalURL           Category = "external_url"
	CategoryScriptTag             Category = "script_tag"
	CategoryJavascriptScheme      Category = "javascript_scheme"
	CategoryVbscriptScheme        Category = "vbscript_scheme"
	CategoryDataHTMLScheme        Category = "data_html_scheme"
	CategoryEvalCall              Category = "eval_call"
	CategoryCookieAccess          Category = "cookie_access"
	CategoryLocalStorageAccess    Category = "local_storage_access"
	CategorySessionStorageAccess  Category = "session_storage_access"
	CategoryEmbeddedFrame         Category = "embedded_frame"
	CategoryEmbeddedObject        Category = "embedded_object"
	CategoryEmbeddedEmbed         Category = "embedded_embed"
	CategoryEventHandlerAttribute Category = "event_handler_attribute"

	// 注意喚起のみのカテゴリ
	CategoryPersonalInfo   Category = "personal_info"
	CategoryMeetingRequest Category = "meeting_request"
	CategorySecrecy        Category = "secrecy"
	CategorySocialPlatform Category = "social_platform"
)

// String は文字列を返します
func (c Category) String() string {
	return string(c)
}

// Kind はルールの種類を表します
type Kind string

const (
	// KindContact は連絡先の共有（ブロック対象）
	KindContact Kind = "contact"
	// KindInjection はスクリプト注入（ブロック対象、パラメータ検査にも使用）
	KindInjection Kind = "injection"
	// KindAdvisory はクライアント側の注意喚起のみ
	KindAdvisory Kind = "advisory"
)

// Matcher はテキストがルールに一致するかを判定します
type Matcher interface {
	Match(text string) bool
	// Pattern は公開用のパターン表現を返します
	Pattern() string
}

type literalWord struct {
	word string
	re   *regexp.Regexp
}

// LiteralWord は大文字小文字を区別しない単語一致のMatcherを作成します
func LiteralWord(word string) Matcher {
	return &literalWord{
		word: strings.ToLower(word),
		re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`),
	}
}

func (m *literalWord) Match(text string) bool {
	return m.re.MatchString(text)
}

func (m *literalWord) Pattern() string {
	return m.word
}

type regexPattern struct {
	source string
	re     *regexp.Regexp
}

// RegexPattern は大文字小文字を区別しない正規表現のMatcherを作成します
func RegexPattern(pattern string) Matcher {
	return &regexPattern{
		source: pattern,
		re:     regexp.MustCompile(`(?i)` + pattern),
	}
}

func (m *regexPattern) Match(text string) bool {
	return m.re.MatchString(text)
}

func (m *regexPattern) Pattern() string {
	return m.source
}

// Rule はモデレーションルールを定義します
// プロセス起動時に一度だけ読み込み、以後は変更しません
type Rule struct {
	Category Category
	Kind     Kind
	Matcher  Matcher
	Message  string
}

// IsBlocking はサーバー側でブロックするルールかを判定します
func (r Rule) IsBlocking() bool {
	return r.Kind == KindContact || r.Kind == KindInjection
}
