package ports

import "context"

// Channel names understood by the fan-out. Each configured ChannelSender
// reports one of these from Channel().
const (
	ChannelEmail    = "email"
	ChannelTelegram = "telegram"
	ChannelWhatsApp = "whatsapp"
)

// Notification is one rendered message addressed to one recipient.
type Notification struct {
	Recipient string
	Subject   string
	Body      string
}

// ChannelResult is the outcome of one delivery attempt on one channel.
type ChannelResult struct {
	Channel   string `json:"channel"`
	Recipient string `json:"recipient"`
	Delivered bool   `json:"delivered"`
	Error     string `json:"error,omitempty"`
}

// ChannelSender delivers notifications over one channel (email, telegram,
// whatsapp). Send failures are logged and never propagate to the business
// operation that triggered the notification.
type ChannelSender interface {
	// Channel returns the channel name for logging and delivery records.
	Channel() string

	// Send delivers the notification. The recipient field carries whatever
	// address the channel needs: an email address, chat ID, or phone number.
	Send(ctx context.Context, n Notification) error
}
