package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

// SMTPConfig carries credentials for the SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPSender delivers messages over plain SMTP with optional AUTH PLAIN.
type SMTPSender struct {
	cfg    SMTPConfig
	logger zerolog.Logger
	// send is swappable for tests.
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender constructs an SMTP sender.
func NewSMTPSender(cfg SMTPConfig, logger zerolog.Logger) *SMTPSender {
	if cfg.Port <= 0 {
		cfg.Port = 587
	}
	return &SMTPSender{
		cfg:    cfg,
		logger: logger.With().Str("component", "smtp_sender").Logger(),
		send:   smtp.SendMail,
	}
}

// Send performs a single delivery attempt. Any failure, including a missing
// relay configuration, is captured in the Result.
func (s *SMTPSender) Send(ctx context.Context, msg Message) Result {
	if s.cfg.Host == "" {
		s.logger.Warn().Msg("smtp relay not configured, skipping email send")
		return Result{Error: "email service unavailable"}
	}

	if err := ctx.Err(); err != nil {
		return Result{Error: err.Error()}
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	payload := buildPayload(msg)
	if err := s.send(addr, auth, msg.From, []string{msg.To}, payload); err != nil {
		s.logger.Warn().Err(err).Str("to", msg.To).Msg("email send failed")
		return Result{Error: err.Error()}
	}

	s.logger.Info().Str("to", msg.To).Msg("email sent")
	return Result{Success: true}
}

func buildPayload(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}
