package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

const twilioAPIBase = "https://api.twilio.com"

// WhatsAppConfig holds Twilio credentials. The sender runs in mock mode
// unless the account SID looks valid (starts with AC, 34 characters), the
// same check the hosted provider enforces.
type WhatsAppConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

func (c WhatsAppConfig) enabled() bool {
	return strings.HasPrefix(c.AccountSID, "AC") && len(c.AccountSID) == 34 && c.AuthToken != ""
}

// WhatsAppSender delivers notifications through the Twilio WhatsApp API.
// The recipient field carries the phone number.
type WhatsAppSender struct {
	httpClient *http.Client
	baseURL    string
	cfg        WhatsAppConfig
	logger     *slog.Logger
}

// NewWhatsAppSender creates a whatsapp channel sender.
func NewWhatsAppSender(cfg WhatsAppConfig, logger *slog.Logger) *WhatsAppSender {
	return &WhatsAppSender{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    twilioAPIBase,
		cfg:        cfg,
		logger:     logger.With("component", "notify", "channel", "whatsapp"),
	}
}

// WithBaseURL overrides the API endpoint, used by tests.
func (s *WhatsAppSender) WithBaseURL(baseURL string) *WhatsAppSender {
	s.baseURL = baseURL
	return s
}

// Channel returns the channel name.
func (s *WhatsAppSender) Channel() string { return "whatsapp" }

// Send delivers the notification to the recipient's phone number.
func (s *WhatsAppSender) Send(ctx context.Context, n ports.Notification) error {
	if !s.cfg.enabled() {
		s.logger.InfoContext(ctx, "mock whatsapp delivery",
			"recipient", n.Recipient, "subject", n.Subject)
		return nil
	}

	form := url.Values{
		"From": {"whatsapp:" + s.cfg.FromNumber},
		"To":   {"whatsapp:" + n.Recipient},
		"Body": {n.Subject + "\n\n" + n.Body},
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errs.NewUpstreamUnavailableError("twilio", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errs.NewUpstreamUnavailableError("twilio",
			fmt.Errorf("messages: status %d: %s", resp.StatusCode, body))
	}

	return nil
}
