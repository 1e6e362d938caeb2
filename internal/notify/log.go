package notify

import (
	"context"
	"log/slog"
)

// LogSender only writes the email to the log. It is the default transport
// for development.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, e Email) error {
	s.log.InfoContext(ctx, "email (log transport)",
		"to", e.To,
		"template", e.Template,
		"subject", e.Subject,
		"text", e.Text,
	)
	return nil
}
