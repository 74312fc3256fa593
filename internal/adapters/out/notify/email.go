// Package notify implements the notification channel senders and the async
// dispatcher that fans business events out to them. Every sender falls back to
// mock mode when its credentials are absent, logging the message instead of
// delivering it, so the service runs without any provider account.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"marketplace/internal/core/ports"
)

// EmailConfig holds SMTP settings. Empty Host enables mock mode.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// EmailSender delivers notifications over SMTP.
type EmailSender struct {
	cfg    EmailConfig
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	logger *slog.Logger
}

// NewEmailSender creates an email channel sender.
func NewEmailSender(cfg EmailConfig, logger *slog.Logger) *EmailSender {
	return &EmailSender{
		cfg:    cfg,
		send:   smtp.SendMail,
		logger: logger.With("component", "notify", "channel", "email"),
	}
}

// Channel returns the channel name.
func (s *EmailSender) Channel() string { return "email" }

// Send delivers the notification to the recipient's email address.
func (s *EmailSender) Send(ctx context.Context, n ports.Notification) error {
	if s.cfg.Host == "" {
		s.logger.InfoContext(ctx, "mock email delivery",
			"recipient", n.Recipient, "subject", n.Subject)
		return nil
	}

	msg := fmt.Appendf(nil,
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		s.cfg.From, n.Recipient, n.Subject, n.Body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	return s.send(addr, auth, s.cfg.From, []string{n.Recipient}, msg)
}
