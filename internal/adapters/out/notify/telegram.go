package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramSender delivers notifications through the Telegram bot API.
// The recipient field carries the chat identifier.
type TelegramSender struct {
	httpClient *http.Client
	baseURL    string
	botToken   string
	logger     *slog.Logger
}

// NewTelegramSender creates a telegram channel sender. An empty bot token
// enables mock mode.
func NewTelegramSender(botToken string, logger *slog.Logger) *TelegramSender {
	return &TelegramSender{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    telegramAPIBase,
		botToken:   botToken,
		logger:     logger.With("component", "notify", "channel", "telegram"),
	}
}

// WithBaseURL overrides the API endpoint, used by tests.
func (s *TelegramSender) WithBaseURL(baseURL string) *TelegramSender {
	s.baseURL = baseURL
	return s
}

// Channel returns the channel name.
func (s *TelegramSender) Channel() string { return "telegram" }

// Send delivers the notification to the recipient chat.
func (s *TelegramSender) Send(ctx context.Context, n ports.Notification) error {
	if s.botToken == "" {
		s.logger.InfoContext(ctx, "mock telegram delivery",
			"recipient", n.Recipient, "subject", n.Subject)
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id": n.Recipient,
		"text":    n.Subject + "\n\n" + n.Body,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errs.NewUpstreamUnavailableError("telegram", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errs.NewUpstreamUnavailableError("telegram",
			fmt.Errorf("sendMessage: status %d: %s", resp.StatusCode, body))
	}

	return nil
}
