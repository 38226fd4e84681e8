package mailer

import (
	"errors"

	"gopkg.in/gomail.v2"
)

// Config carries SMTP settings for outbound mail.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender delivers plain-text service mail over SMTP. A Sender with no host
// configured is disabled: Send reports ErrDisabled and callers treat delivery
// as best-effort.
type Sender struct {
	cfg Config
	// dial is swappable so tests can capture messages without a live SMTP server.
	dial func(m *gomail.Message) error
}

// ErrDisabled is returned when no SMTP host is configured.
var ErrDisabled = errors.New("mailer: not configured")

// New builds a Sender from config.
func New(cfg Config) *Sender {
	s := &Sender{cfg: cfg}
	if cfg.Host != "" {
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		s.dial = func(m *gomail.Message) error { return d.DialAndSend(m) }
	}
	return s
}

// Enabled reports whether the sender can deliver mail.
func (s *Sender) Enabled() bool {
	return s != nil && s.dial != nil
}

// Send delivers a plain-text message to a single recipient.
func (s *Sender) Send(to, subject, body string) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	if to == "" {
		return errors.New("mailer: recipient is required")
	}

	return s.dial(s.Compose(to, subject, body))
}

// Compose builds the outbound message without sending it.
func (s *Sender) Compose(to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return m
}
