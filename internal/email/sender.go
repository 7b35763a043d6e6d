package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/relense/influencer-markt-sub001/internal/config"
	"github.com/relense/influencer-markt-sub001/internal/logger"
)

// Sender delivers notification emails. The outbox worker is the only caller;
// it retries on error, so Send must be safe to invoke more than once per
// notification.
type Sender interface {
	Send(to, subject, body string) error
}

type SMTPSender struct {
	cfg *config.Config
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.Email.FromEmail, s.cfg.Email.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Email.SMTPHost, s.cfg.Email.SMTPPort, s.cfg.Email.SMTPUsername, s.cfg.Email.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}

// NoopSender replaces SMTP when email is disabled; it logs and succeeds so
// outbox rows still drain.
type NoopSender struct{}

func (NoopSender) Send(to, subject, body string) error {
	logger.Debug("email delivery skipped (disabled)", "to", to, "subject", subject)
	return nil
}

// NewSender picks the SMTP sender or the noop one based on configuration.
func NewSender(cfg *config.Config) Sender {
	if cfg.Email.Enabled {
		return NewSMTPSender(cfg)
	}
	return NoopSender{}
}
