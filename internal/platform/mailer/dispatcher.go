package mailer

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const defaultSendTimeout = 15 * time.Second

// Dispatcher sends messages on background goroutines so that request handlers never wait on the provider.
// Failures are logged and otherwise dropped.
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher wraps sender. A non-positive timeout falls back to 15s.
func NewDispatcher(sender Sender, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &Dispatcher{sender: sender, timeout: timeout}
}

// Dispatch queues msg for delivery and returns immediately.
// The send runs with its own timeout, detached from the caller's context.
func (d *Dispatcher) Dispatch(msg Message) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.sender.Send(ctx, msg); err != nil {
			slog.Error("email send failed", "error", err, "subject", msg.Subject)
			return
		}
		slog.Debug("email sent", "subject", msg.Subject)
	}()
}

// Wait blocks until every dispatched message has finished or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
