package mailer

import (
	"context"

	"github.com/rs/zerolog"
)

// Message is a single outbound notification email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Result captures the outcome of one delivery attempt. Failures are carried
// here rather than returned as errors.
type Result struct {
	Success bool
	Error   string
}

// Sender delivers messages best-effort: at most one attempt per call, no
// retries, and never an error back to the caller.
type Sender interface {
	Send(ctx context.Context, msg Message) Result
}

// LogSender writes messages to the log instead of delivering them. Used in
// development when no SMTP relay is configured.
type LogSender struct {
	logger zerolog.Logger
}

// NewLogSender constructs a logging sender.
func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger.With().Str("component", "log_sender").Logger()}
}

// Send logs the message and reports success.
func (l *LogSender) Send(ctx context.Context, msg Message) Result {
	l.logger.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("email delivery skipped, message logged")
	return Result{Success: true}
}
