package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// Config はSMTP設定を定義します
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	UseTLS   bool
	Timeout  time.Duration
}

// DefaultConfig はデフォルト設定を返します
func DefaultConfig() Config {
	return Config{
		Host:     "localhost",
		Port:     1025, // MailHog
		From:     "safety@kidseducation.local",
		FromName: "KidsEducation Safety",
		Timeout:  10 * time.Second,
	}
}

// Sender はHTMLメールの送信を定義します
type Sender interface {
	SendHTML(to []string, subject, htmlBody string) error
}

// SMTPClient はSMTPクライアントを提供します
type SMTPClient struct {
	config Config
}

// NewSMTPClient は新しいSMTPClientを作成します
func NewSMTPClient(cfg Config) *SMTPClient {
	return &SMTPClient{config: cfg}
}

// SendHTML はHTMLメールを送信します
func (c *SMTPClient) SendHTML(to []string, subject, htmlBody string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}
	return c.send(to, buildMessage(c.sender(), to, subject, htmlBody))
}

func (c *SMTPClient) sender() string {
	if c.config.FromName == "" {
		return c.config.From
	}
	return fmt.Sprintf("%s <%s>", c.config.FromName, c.config.From)
}

// buildMessage はヘッダーを固定順で並べたメッセージを構築します
func buildMessage(from string, to []string, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func (c *SMTPClient) send(to []string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", c.config.Host, c.config.Port)

	var auth smtp.Auth
	if c.config.Username != "" && c.config.Password != "" {
		auth = smtp.PlainAuth("", c.config.Username, c.config.Password, c.config.Host)
	}

	if !c.config.UseTLS {
		return smtp.SendMail(addr, auth, c.config.From, to, msg)
	}
	return c.sendWithTLS(addr, auth, to, msg)
}

// sendWithTLS は暗黙TLS（SMTPS）で送信します
func (c *SMTPClient) sendWithTLS(addr string, auth smtp.Auth, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: c.config.Host})
	if err != nil {
		return fmt.Errorf("failed to connect with TLS: %w", err)
	}
	defer conn.Close()

	if c.config.Timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(c.config.Timeout))
	}

	client, err := smtp.NewClient(conn, c.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}
	if err := client.Mail(c.config.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return client.Quit()
}
