package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/ports"
)

// dispatchTimeout bounds how long one fan-out may take once detached from the
// request that triggered it.
const dispatchTimeout = 30 * time.Second

// Dispatcher is the fire-and-forget notifier used by command handlers. Each
// Notify call detaches from the caller's context and runs the fan-out in its
// own goroutine, so a slow channel never blocks a business transaction.
type Dispatcher struct {
	handler commands.SendNotificationCommandHandler
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher over the fan-out handler.
func NewDispatcher(handler commands.SendNotificationCommandHandler, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handler: handler,
		logger:  logger.With("component", "notify"),
	}
}

// Notify queues the notification and returns immediately. Failures are logged,
// never surfaced: a lost notification must not fail checkout. Coordinators
// only know the buyer's email address, so internal events go out on the
// email channel.
func (d *Dispatcher) Notify(ctx context.Context, event, recipient string, data map[string]string) {
	recipients := map[string][]string{ports.ChannelEmail: {recipient}}
	cmd, err := commands.NewSendNotificationCommand(event, recipients, data)
	if err != nil {
		d.logger.WarnContext(ctx, "dropping notification", "event", event, "error", err)
		return
	}

	// Correlation and other context values survive; cancellation does not,
	// the send must outlive the request that triggered it.
	detached := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		sendCtx, cancel := context.WithTimeout(detached, dispatchTimeout)
		defer cancel()

		if _, err := d.handler.Handle(sendCtx, cmd); err != nil {
			d.logger.WarnContext(sendCtx, "notification dispatch failed",
				"event", event, "error", err)
		}
	}()
}

// Wait blocks until all queued notifications have been dispatched. Called on
// shutdown so in-flight sends are not cut off.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
