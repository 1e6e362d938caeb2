package notify

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/BruksfildServices01/site-backend/internal/config"
)

// AMQPSender hands rendered emails to a durable queue consumed by an
// external mailer.
type AMQPSender struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

func NewAMQPSender(cfg config.MailConfig) (*AMQPSender, error) {
	if strings.TrimSpace(cfg.AMQPURL) == "" {
		return nil, errors.New("amqp: RABBITMQ_URL is required")
	}
	if strings.TrimSpace(cfg.AMQPQueue) == "" {
		return nil, errors.New("amqp: MAIL_QUEUE is required")
	}

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if _, err := ch.QueueDeclare(cfg.AMQPQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &AMQPSender{conn: conn, channel: ch, queue: cfg.AMQPQueue}, nil
}

func (s *AMQPSender) Send(ctx context.Context, e Email) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.channel.PublishWithContext(ctx, "", s.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Type:         e.Template,
		Body:         body,
	})
}

func (s *AMQPSender) Close() error {
	if s.channel != nil {
		_ = s.channel.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
