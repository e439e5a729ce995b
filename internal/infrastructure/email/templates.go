package email

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"time"
)

// AlertTemplateData はアラートメールのテンプレートデータです
type AlertTemplateData struct {
	AppName    string
	AppURL     string
	Title      string
	SubjectID  string
	OccurredAt string
	Details    []AlertDetail
}

// AlertDetail はアラートの付帯情報1件です
type AlertDetail struct {
	Key   string
	Value string
}

var alertTemplate = template.Must(template.New("security_alert").Parse(securityAlertTemplate))

// RenderAlert はアラートメール本文をレンダリングします
func RenderAlert(data AlertTemplateData) (string, error) {
	var buf bytes.Buffer
	if err := alertTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render alert template: %w", err)
	}
	return buf.String(), nil
}

// sortedDetails はキー順の付帯情報を返します
func sortedDetails(details map[string]string) []AlertDetail {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]AlertDetail, 0, len(keys))
	for _, k := range keys {
		result = append(result, AlertDetail{Key: k, Value: details[k]})
	}
	return result
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 MST")
}

const securityAlertTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h1 style="color: #dc2626;">{{.Title}}</h1>
        <p>お子さまのアカウントで不審な操作を検知し、リクエストをブロックしました。</p>
        <table style="border-collapse: collapse; margin: 20px 0;">
            <tr><td style="padding: 4px 12px 4px 0; color: #666;">アカウント</td><td>{{.SubjectID}}</td></tr>
            <tr><td style="padding: 4px 12px 4px 0; color: #666;">発生日時</td><td>{{.OccurredAt}}</td></tr>
            {{range .Details}}<tr><td style="padding: 4px 12px 4px 0; color: #666;">{{.Key}}</td><td>{{.Value}}</td></tr>
            {{end}}
        </table>
        <p style="margin: 30px 0;">
            <a href="{{.AppURL}}" style="background-color: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px;">
                管理画面を開く
            </a>
        </p>
        <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
        <p style="font-size: 12px; color: #666;">
            このメールは{{.AppName}}からの自動送信です。
        </p>
    </div>
</body>
</html>`
