package commands

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// messageTemplate is the subject and body for one event. Body placeholders
// look like {order_id} and are filled from the command data.
type messageTemplate struct {
	subject string
	body    string
}

var messageTemplates = map[string]messageTemplate{
	EventOrderCreated: {
		subject: "Order received",
		body:    "Your order {order_id} for {part} has been received. Total: {amount}. We will notify you once payment is confirmed.",
	},
	EventOrderUpdated: {
		subject: "Order update",
		body:    "Your order {order_id} is now {status}.",
	},
	EventOrderCancelled: {
		subject: "Order cancelled",
		body:    "Your order {order_id} has been cancelled. If you already paid, a refund will follow.",
	},
	EventPaymentSuccess: {
		subject: "Payment confirmed",
		body:    "Payment of {amount} for order {order_id} was successful (ref {reference}). Your order is being prepared for dispatch.",
	},
	EventPaymentFailed: {
		subject: "Payment failed",
		body:    "Payment for order {order_id} did not go through: {reason}. You can retry payment from your orders page.",
	},
	EventDeliveryAssigned: {
		subject: "Rider on the way",
		body:    "A rider has been assigned to order {order_id}. Track your package with code {tracking_code}.",
	},
	EventDeliveryUpdated: {
		subject: "Delivery update",
		body:    "Order {order_id} ({tracking_code}) is now {status}.",
	},
	EventDeliveryDelivered: {
		subject: "Package delivered",
		body:    "Order {order_id} ({tracking_code}) has been delivered. Thank you for shopping with us.",
	},
}

// SendNotificationCommandHandler fans one message out to the addressed
// channels in parallel. A channel failure is recorded in the result and does
// not stop the others; the handler only errors when the event has no
// template, no channel is configured, or no configured channel matches the
// requested recipients.
type SendNotificationCommandHandler struct {
	senders []ports.ChannelSender
	logger  *slog.Logger
}

// NewSendNotificationCommandHandler creates a handler over the configured channels.
func NewSendNotificationCommandHandler(senders []ports.ChannelSender, logger *slog.Logger) SendNotificationCommandHandler {
	return SendNotificationCommandHandler{senders: senders, logger: logger}
}

// Handle renders the event template, dispatches it to every addressed
// channel, and reports the outcome per channel and recipient.
func (h *SendNotificationCommandHandler) Handle(ctx context.Context, cmd SendNotificationCommand) ([]ports.ChannelResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	tpl, ok := messageTemplates[cmd.Event()]
	if !ok {
		return nil, errs.NewValueIsInvalidError("event")
	}
	if len(h.senders) == 0 {
		return nil, errs.NewValidationError("no notification channel is configured")
	}

	subject := tpl.subject
	body := renderTemplate(tpl.body, cmd.Data())

	var mu sync.Mutex
	var results []ports.ChannelResult

	group, groupCtx := errgroup.WithContext(ctx)
	for _, sender := range h.senders {
		for _, recipient := range cmd.Recipients()[sender.Channel()] {
			group.Go(func() error {
				err := sender.Send(groupCtx, ports.Notification{
					Recipient: recipient,
					Subject:   subject,
					Body:      body,
				})

				result := ports.ChannelResult{
					Channel:   sender.Channel(),
					Recipient: recipient,
					Delivered: err == nil,
				}
				if err != nil {
					result.Error = err.Error()
					h.logger.WarnContext(ctx, "notification channel failed",
						"channel", sender.Channel(),
						"event", cmd.Event(),
						"error", err)
				}

				mu.Lock()
				results = append(results, result)
				mu.Unlock()
				return nil
			})
		}
	}
	_ = group.Wait()

	if len(results) == 0 {
		return nil, errs.NewValidationError("no configured channel matches the recipients")
	}

	return results, nil
}

func renderTemplate(body string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(body)
}
