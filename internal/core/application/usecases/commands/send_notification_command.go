package commands

import (
	"errors"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrSendNotificationCommandIsNotConstructed = errors.New(
	"SendNotificationCommand must be created via NewSendNotificationCommand constructor",
)

// SendNotificationCommand renders the template for an event and fans the
// message out to the addressed channels. Recipients are grouped by channel
// name, so one request can reach different addresses on different channels.
type SendNotificationCommand struct { //nolint:recvcheck //using for validation
	event      string
	recipients map[string][]string
	data       map[string]string

	guard guard.ConstructorGuard
}

// NewSendNotificationCommand creates a command to notify the given recipients
// about an event. Keys of recipients are channel names; data values fill the
// {placeholders} of the event template.
func NewSendNotificationCommand(event string, recipients map[string][]string, data map[string]string) (SendNotificationCommand, error) {
	if event == "" {
		return SendNotificationCommand{}, errs.NewValueIsRequiredError("event")
	}

	byChannel := make(map[string][]string, len(recipients))
	addresses := 0
	for channel, list := range recipients {
		for _, recipient := range list {
			if recipient == "" {
				continue
			}
			byChannel[channel] = append(byChannel[channel], recipient)
			addresses++
		}
	}
	if addresses == 0 {
		return SendNotificationCommand{}, errs.NewValueIsRequiredError("recipients")
	}

	values := make(map[string]string, len(data))
	for k, v := range data {
		values[k] = v
	}

	return SendNotificationCommand{
		event:      event,
		recipients: byChannel,
		data:       values,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SendNotificationCommand) Validate() error {
	return c.guard.Validate(ErrSendNotificationCommandIsNotConstructed)
}

// Event returns the business event being announced.
func (c SendNotificationCommand) Event() string { return c.event }

// Recipients returns the addresses grouped by channel name.
func (c SendNotificationCommand) Recipients() map[string][]string { return c.recipients }

// Data returns the template values.
func (c SendNotificationCommand) Data() map[string]string { return c.data }
