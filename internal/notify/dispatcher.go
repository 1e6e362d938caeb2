package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

type Message struct {
	To       string
	Name     string
	Template string
	Data     map[string]string
}

type Email struct {
	To       string `json:"to"`
	ToName   string `json:"to_name"`
	Template string `json:"template"`
	Subject  string `json:"subject"`
	HTML     string `json:"html"`
	Text     string `json:"text"`
}

type Sender interface {
	Send(ctx context.Context, e Email) error
}

// Notifier is what request handlers see: fire and forget.
type Notifier interface {
	Notify(msg Message)
}

var ErrClosed = errors.New("notify: dispatcher closed")

// Dispatcher renders and sends emails on a single background worker fed by
// a bounded queue. When the queue is full the message is dropped and logged.
type Dispatcher struct {
	templates *Templates
	sender    Sender
	log       *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan Message
	done   chan struct{}
}

func NewDispatcher(templates *Templates, sender Sender, log *slog.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		templates: templates,
		sender:    sender,
		log:       log,
		queue:     make(chan Message, size),
		done:      make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for msg := range d.queue {
		if err := d.deliver(context.Background(), msg); err != nil {
			d.log.Error("email delivery failed", "template", msg.Template, "to", msg.To, "err", err)
		}
	}
}

func (d *Dispatcher) Notify(msg Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("email dropped after shutdown", "template", msg.Template, "to", msg.To)
		return
	}

	select {
	case d.queue <- msg:
	default:
		d.log.Warn("email queue full, dropping message", "template", msg.Template, "to", msg.To)
	}
}

// SendNow renders and delivers msg on the caller's goroutine. It returns
// ErrClosed once Close has been called.
func (d *Dispatcher) SendNow(ctx context.Context, msg Message) error {
	d.mu.RLock()
	closed := d.closed
	d.mu.RUnlock()
	if closed {
		return ErrClosed
	}
	return d.deliver(ctx, msg)
}

func (d *Dispatcher) deliver(ctx context.Context, msg Message) error {
	email, err := d.templates.Render(msg)
	if err != nil {
		return err
	}
	if err := d.sender.Send(ctx, email); err != nil {
		return err
	}
	d.log.Info("email sent", "template", msg.Template, "to", msg.To)
	return nil
}

// Close stops accepting messages and waits for queued ones to be delivered
// or for ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Notify(Message) {}
