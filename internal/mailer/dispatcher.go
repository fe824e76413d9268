package mailer

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Dispatcher queues composed emails and delivers them on a background worker.
// Delivery is at-most-once, best-effort: once an email is accepted the caller
// gets no delivery feedback, and failures are logged only.
type Dispatcher struct {
	transport Transport
	queue     chan *Email
	timeout   time.Duration
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewDispatcher starts the background worker. queueSize bounds the number of
// pending emails; sendTimeout bounds each delivery attempt.
func NewDispatcher(transport Transport, queueSize int, sendTimeout time.Duration) *Dispatcher {
	d := &Dispatcher{
		transport: transport,
		queue:     make(chan *Email, queueSize),
		timeout:   sendTimeout,
	}
	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for email := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := d.transport.Send(ctx, email); err != nil {
			zap.L().Warn("email delivery failed",
				zap.String("to", email.To),
				zap.String("subject", email.Subject),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// Enqueue hands an email to the background worker without blocking. When the
// queue is full the email is dropped and the drop is logged.
func (d *Dispatcher) Enqueue(email *Email) {
	select {
	case d.queue <- email:
	default:
		zap.L().Warn("email queue full, dropping message",
			zap.String("to", email.To),
			zap.String("subject", email.Subject),
		)
	}
}

// Close stops accepting emails and waits for queued deliveries to finish.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}
