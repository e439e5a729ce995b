package command

import (
	"context"
	"net/url"
	"sort"
	"strings"

	ua "github.com/mileusna/useragent"

	"github.com/julija05/kidseducation-guard/internal/domain/entity"
	"github.com/julija05/kidseducation-guard/internal/domain/moderation"
	"github.com/julija05/kidseducation-guard/internal/domain/service"
	"github.com/julija05/kidseducation-guard/internal/domain/valueobject"
)

// probeMarkers はURLに含まれていれば探索・攻撃とみなす文字列です（小文字で比較）
var probeMarkers = []string{
	"/admin",
	"/wp-admin",
	"/wp-login.php",
	"/phpmyadmin",
	"/.env",
	"/.git",
	"../",
	"..\\",
	"javascript:",
	"vbscript:",
	"data:",
	"<script",
	"eval(",
	"document.cookie",
	"localstorage",
}

// automationMarkers は自動化ツールのUser-Agentに含まれる文字列です（小文字で比較）
var automationMarkers = []string{
	"bot",
	"crawler",
	"spider",
	"scrapy",
	"curl",
	"wget",
	"python-requests",
	"python-urllib",
	"go-http-client",
	"httpclient",
	"headless",
	"phantomjs",
	"selenium",
	"puppeteer",
	"playwright",
	"postman",
}

// EvaluateActivityInput は行動監視の入力を定義します
type EvaluateActivityInput struct {
	Subject   *entity.Subject
	RawURL    string              // パスとクエリ文字列
	Params    map[string][]string // クエリ・フォーム・パスパラメータ
	UserAgent string
	ClientIP  string
	// RapidPageChanges はページ遷移数がしきい値を超えたことを示します
	RapidPageChanges bool
}

// EvaluateActivityOutput は行動監視の出力を定義します
type EvaluateActivityOutput struct {
	Verdict *entity.ActivityVerdict
	Skipped bool
}

// EvaluateActivityCommand は未成年アカウントのリクエストから不審な挙動を検出するコマンドです
type EvaluateActivityCommand struct {
	moderator *moderation.Moderator
	alerts    service.AlertDispatcher
}

// NewEvaluateActivityCommand は新しいEvaluateActivityCommandを作成します
func NewEvaluateActivityCommand(moderator *moderation.Moderator, alerts service.AlertDispatcher) *EvaluateActivityCommand {
	return &EvaluateActivityCommand{
		moderator: moderator,
		alerts:    alerts,
	}
}

// Execute は行動監視を実行します
// ブロック対象のシグナルを検出した場合はアラートを送信します
func (c *EvaluateActivityCommand) Execute(ctx context.Context, input EvaluateActivityInput) (*EvaluateActivityOutput, error) {
	if !input.Subject.IsMinor() {
		return &EvaluateActivityOutput{Verdict: entity.NewActivityVerdict(), Skipped: true}, nil
	}

	verdict := entity.NewActivityVerdict()

	if isPathProbe(input.RawURL) {
		verdict.Add(valueobject.ReasonPathProbe)
	}
	if c.hasBlockedParam(input.Params) {
		verdict.Add(valueobject.ReasonScriptInjection)
	}
	if input.RapidPageChanges {
		verdict.Add(valueobject.ReasonRapidPageChanges)
	}
	if isSuspiciousUserAgent(input.UserAgent) {
		verdict.Add(valueobject.ReasonSuspiciousUserAgent)
	}

	if verdict.Blocked() {
		c.alerts.Dispatch(ctx, input.Subject.ID, entity.AlertEventSecurityBlocked, map[string]string{
			"reasons":    strings.Join(verdict.ReasonStrings(), ","),
			"url":        input.RawURL,
			"ip":         input.ClientIP,
			"user_agent": input.UserAgent,
		})
	}

	return &EvaluateActivityOutput{Verdict: verdict}, nil
}

// hasBlockedParam はパラメータ名・値のいずれかがブロック対象ルールに一致するかを判定します
// 連絡先の共有も注入系と同じく即時ブロックします
func (c *EvaluateActivityCommand) hasBlockedParam(params map[string][]string) bool {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if c.moderator.CheckText(k).Violating() {
			return true
		}
		for _, v := range params[k] {
			if c.moderator.CheckText(v).Violating() {
				return true
			}
		}
	}
	return false
}

// isPathProbe はURLが探索・攻撃の文字列を含むかを判定します
// エンコードされたままの形とデコード後の形の両方を検査します
func isPathProbe(rawURL string) bool {
	candidates := []string{strings.ToLower(rawURL)}
	if decoded, err := url.QueryUnescape(rawURL); err == nil && decoded != rawURL {
		candidates = append(candidates, strings.ToLower(decoded))
	} else if decoded, err := url.PathUnescape(rawURL); err == nil && decoded != rawURL {
		candidates = append(candidates, strings.ToLower(decoded))
	}

	for _, candidate := range candidates {
		for _, marker := range probeMarkers {
			if strings.Contains(candidate, marker) {
				return true
			}
		}
	}
	return false
}

// isSuspiciousUserAgent は自動化ツールらしいUser-Agentかを判定します
func isSuspiciousUserAgent(userAgent string) bool {
	trimmed := strings.TrimSpace(userAgent)
	if trimmed == "" {
		return true
	}

	lower := strings.ToLower(trimmed)
	for _, marker := range automationMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return ua.Parse(trimmed).Bot
}
