package notify

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/BruksfildServices01/site-backend/internal/config"
)

// NewSender picks the transport named by MAIL_TRANSPORT. The returned
// closer releases the transport's connection and may be a no-op.
func NewSender(cfg config.MailConfig, log *slog.Logger) (Sender, io.Closer, error) {
	switch cfg.Transport {
	case "smtp":
		s, err := NewSMTPSender(cfg)
		return s, nopCloser{}, err
	case "amqp":
		s, err := NewAMQPSender(cfg)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case "log", "":
		return NewLogSender(log), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown mail transport %q", cfg.Transport)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
