package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/arklim/social-platform-api/internal/core/port"
	"github.com/arklim/social-platform-api/internal/infra/config"
)

const (
	passwordChangedSubject = "Password updated successfully"
	passwordChangedBody    = "Your password has been changed. If you haven't done this change, please contact us."

	passwordResetSubject = "Password reset requested"
)

// SMTPMailer delivers transactional mail over SMTP with plain auth.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer constructs an SMTP-backed mailer from mail settings.
func NewSMTPMailer(cfg config.MailSettings) *SMTPMailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: auth,
		from: cfg.From,
		send: smtp.SendMail,
	}
}

// SendPasswordChanged notifies a user that their password was updated.
func (m *SMTPMailer) SendPasswordChanged(ctx context.Context, to string) error {
	return m.deliver(ctx, to, passwordChangedSubject, passwordChangedBody)
}

// SendPasswordReset delivers a password reset token to the user.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, token string) error {
	body := fmt.Sprintf("Use the following token to reset your password: %s", token)
	return m.deliver(ctx, to, passwordResetSubject, body)
}

func (m *SMTPMailer) deliver(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	to = strings.TrimSpace(to)
	if to == "" {
		return fmt.Errorf("mail: recipient is required")
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)

	if err := m.send(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("mail: send to %s: %w", to, err)
	}

	return nil
}

var _ port.Mailer = (*SMTPMailer)(nil)
