package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPNotifier implements Notifier over plain SMTP.
type SMTPNotifier struct {
	config *Config
	auth   smtp.Auth
}

// NewSMTPNotifier creates an SMTP notifier from config.
func NewSMTPNotifier(config *Config) *SMTPNotifier {
	var auth smtp.Auth
	if config.Username != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}
	return &SMTPNotifier{config: config, auth: auth}
}

// Send delivers one HTML message.
func (s *SMTPNotifier) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := s.buildMessage(to, subject, body)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	if err := smtp.SendMail(addr, s.auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}

// buildMessage assembles RFC 5322 headers plus the HTML body.
func (s *SMTPNotifier) buildMessage(to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
