// internal/email/sender.go
package email

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"remindme-service/internal/config"
	"remindme-service/internal/email/templates"
)

// PlaceholderNotice is returned to clients when SMTP is not configured.
const PlaceholderNotice = "Email sending is configured as placeholder. Add SMTP credentials to .env file."

// QueuedNotice is returned when a message was handed to SMTP delivery.
const QueuedNotice = "Email queued for delivery."

const sendTimeout = 30 * time.Second

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type Sender struct {
	cfg    *config.Config
	dialer Dialer
	log    *zap.Logger
}

func NewSender(cfg *config.Config, log *zap.Logger) *Sender {
	var d Dialer
	if cfg.SMTPEnabled() {
		d = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	}
	return NewSenderWithDialer(cfg, d, log)
}

// NewSenderWithDialer builds a Sender around d; a nil d disables delivery.
func NewSenderWithDialer(cfg *config.Config, d Dialer, log *zap.Logger) *Sender {
	return &Sender{cfg: cfg, dialer: d, log: log.Named("email")}
}

// Enabled reports whether real delivery is configured.
func (s *Sender) Enabled() bool {
	return s.dialer != nil
}

// Send delivers one message with a single attempt; failures are not retried.
func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	if !s.Enabled() {
		s.log.Info("[SEND] smtp not configured, skipping delivery", zap.String("to", to))
		return nil
	}

	html, err := templates.RenderMessageEmail(templates.MessageData{
		Subject:  subject,
		Body:     body,
		FromName: s.cfg.SMTPFromName,
	})
	if err != nil {
		return fmt.Errorf("render message: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.SMTPFrom, s.cfg.SMTPFromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	m.AddAlternative("text/html", html)

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send email to %s: %w", to, err)
		}
		s.log.Info("[SUCCESS] email sent", zap.String("to", to), zap.String("subject", subject))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("email send cancelled: %w", ctx.Err())
	}
}

// Queue sends in the background with its own timeout so the request that
// triggered it is not held open. It reports whether delivery was started.
func (s *Sender) Queue(to, subject, body string) bool {
	if !s.Enabled() {
		s.log.Info("[PLACEHOLDER] email not sent", zap.String("to", to), zap.String("subject", subject))
		return false
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := s.Send(ctx, to, subject, body); err != nil {
			s.log.Warn("[ASYNC] background email failed", zap.String("to", to), zap.Error(err))
		}
	}()
	s.log.Info("[QUEUED] email queued for async delivery", zap.String("to", to))
	return true
}
