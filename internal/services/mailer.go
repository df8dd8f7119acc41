package services

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/devnandu/festserver/internal/config"
)

// Mailer sends confirmation mail over plain SMTP. Delivery is best
// effort; registration never fails because the mail server is down.
type Mailer struct {
	host     string
	port     string
	username string
	from     string
	pass     string
	logger   *slog.Logger
}

// NewMailer returns nil when SMTP is not configured, which disables
// outgoing mail entirely.
func NewMailer(cfg *config.Config, logger *slog.Logger) *Mailer {
	if cfg.SMTPHost == "" || cfg.SMTPFromEmail == "" {
		return nil
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		from:     cfg.SMTPFromEmail,
		pass:     cfg.SMTPPassword,
		logger:   logger,
	}
}

func (m *Mailer) SendRegistrationEmail(recipient, name, eventTitle, uniqueCode string) {
	subject := fmt.Sprintf("Registration confirmed: %s", eventTitle)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour registration for %s is confirmed.\nYour entry code is %s. Keep it handy, it will be checked at the venue.\n",
		name, eventTitle, uniqueCode,
	)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.from, recipient, subject, body,
	)

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.username, m.pass, m.host)

	if err := smtp.SendMail(addr, auth, m.from, []string{recipient}, []byte(msg)); err != nil {
		m.logger.Warn("failed to send confirmation email", "recipient", recipient, "error", err)
		return
	}
	m.logger.Info("confirmation email sent", "recipient", recipient)
}
