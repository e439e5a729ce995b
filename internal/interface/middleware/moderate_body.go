package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/julija05/kidseducation-guard/internal/domain/moderation"
	"github.com/julija05/kidseducation-guard/internal/infrastructure/metrics"
	"github.com/julija05/kidseducation-guard/pkg/apperror"
	"github.com/julija05/kidseducation-guard/pkg/logger"
)

// FieldChecker は複数フィールドのモデレーションを定義します
type FieldChecker interface {
	ExecuteFields(fields []moderation.Field) map[string][]moderation.Violation
}

// ModerateBody はJSON本文のすべてのキー・文字列・数値をサーバー側で再検査するミドルウェアを返します
// クライアント側の検査結果は信用しません
func ModerateBody(checker FieldChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.ContentLength == 0 {
				return next(c)
			}

			body, err := io.ReadAll(req.Body)
			if err != nil {
				return apperror.NewInvalidRequestError("failed to read request body")
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			if len(bytes.TrimSpace(body)) == 0 {
				return next(c)
			}

			var payload interface{}
			dec := json.NewDecoder(bytes.NewReader(body))
			dec.UseNumber()
			if err := dec.Decode(&payload); err != nil {
				return apperror.NewInvalidRequestError("invalid request body")
			}
			if _, err := dec.Token(); err != io.EOF {
				return apperror.NewInvalidRequestError("invalid request body")
			}

			fields := collectFields("", payload, nil)

			violations := checker.ExecuteFields(fields)
			if len(violations) == 0 {
				return next(c)
			}

			details, categories := violationDetails(violations)
			for _, category := range categories {
				metrics.TrackModerationViolation(category)
			}
			logger.Warn(req.Context(), "content rejected",
				"uri", req.RequestURI,
				"fields", len(violations),
				"categories", categories,
			)
			return apperror.NewContentRejectedError("content contains information that cannot be shared", details)
		}
	}
}

// collectFields はJSON値を走査し、オブジェクトのキーと文字列・数値の値を収集します
// 同じパスになる値も上書きせずにすべて残します
func collectFields(path string, value interface{}, out []moderation.Field) []moderation.Field {
	switch v := value.(type) {
	case string:
		out = append(out, moderation.Field{Path: rootPath(path), Text: v})
	case json.Number:
		out = append(out, moderation.Field{Path: rootPath(path), Text: v.String()})
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			child := joinPath(path, key)
			out = append(out, moderation.Field{Path: child, Text: key})
			out = collectFields(child, v[key], out)
		}
	case []interface{}:
		for i, child := range v {
			out = collectFields(path+"["+strconv.Itoa(i)+"]", child, out)
		}
	}
	return out
}

func rootPath(path string) string {
	if path == "" {
		return "body"
	}
	return path
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// violationDetails はフィールド順に並べたエラー詳細と、重複のないカテゴリ一覧を返します
func violationDetails(violations map[string][]moderation.Violation) ([]apperror.FieldError, []string) {
	fields := make([]string, 0, len(violations))
	for field := range violations {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	seen := make(map[string]bool)
	var categories []string
	var details []apperror.FieldError
	for _, field := range fields {
		for _, v := range violations[field] {
			details = append(details, apperror.FieldError{Field: field, Message: v.Message})
			if c := v.Category.String(); !seen[c] {
				seen[c] = true
				categories = append(categories, c)
			}
		}
	}
	return details, categories
}
