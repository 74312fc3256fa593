// Package paystack implements the payment gateway port against the Paystack
// REST API. Without a secret key the client runs in mock mode and fabricates
// successful responses locally, which keeps development and test environments
// independent of the provider.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/correlation"
	"marketplace/internal/pkg/errs"
)

const (
	defaultBaseURL = "https://api.paystack.co"
	serviceName    = "paystack"

	requestTimeout = 10 * time.Second
)

// Client talks to the Paystack transaction API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
	logger     *slog.Logger
}

// NewClient creates a Paystack client. An empty secret key enables mock mode.
func NewClient(secretKey string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    defaultBaseURL,
		secretKey:  secretKey,
		logger:     logger.With("component", "paystack"),
	}
}

// WithBaseURL overrides the API endpoint, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeRequest struct {
	Amount    int64  `json:"amount"`
	Email     string `json:"email"`
	Currency  string `json:"currency"`
	Reference string `json:"reference"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Status          string  `json:"status"`
	Reference       string  `json:"reference"`
	Amount          int64   `json:"amount"`
	GatewayResponse string  `json:"gateway_response"`
	PaidAt          *string `json:"paid_at"`
	Channel         string  `json:"channel"`
	Currency        string  `json:"currency"`
}

// Initialize creates a provider transaction and returns the authorization
// handle the buyer completes payment with. Amounts are sent in the minor
// currency unit, as the provider expects.
func (c *Client) Initialize(ctx context.Context, email string, amount kernel.Money, reference string) (ports.GatewayAuthorization, error) {
	if c.secretKey == "" {
		return c.mockInitialize(reference), nil
	}

	body := initializeRequest{
		Amount:    toMinorUnits(amount.Amount()),
		Email:     email,
		Currency:  amount.Currency(),
		Reference: reference,
	}

	var data initializeData
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", body, &data); err != nil {
		return ports.GatewayAuthorization{}, err
	}

	return ports.GatewayAuthorization{
		Reference:        data.Reference,
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
	}, nil
}

// Verify fetches the provider's authoritative view of the transaction.
func (c *Client) Verify(ctx context.Context, reference string) (ports.GatewayTransaction, error) {
	if c.secretKey == "" {
		return c.mockVerify(reference)
	}

	var data verifyData
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &data); err != nil {
		return ports.GatewayTransaction{}, err
	}

	amount, err := kernel.NewMoney(fromMinorUnits(data.Amount), data.Currency)
	if err != nil {
		return ports.GatewayTransaction{}, err
	}

	var paidAt *time.Time
	if data.PaidAt != nil && *data.PaidAt != "" {
		parsed, parseErr := time.Parse(time.RFC3339, *data.PaidAt)
		if parseErr != nil {
			return ports.GatewayTransaction{}, errs.NewValueIsInvalidErrorWithCause("paid_at", parseErr)
		}
		paidAt = &parsed
	}

	return ports.GatewayTransaction{
		Reference:       data.Reference,
		Status:          data.Status,
		Amount:          amount,
		Channel:         data.Channel,
		GatewayResponse: data.GatewayResponse,
		PaidAt:          paidAt,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	if id := correlation.FromContext(ctx); id != "" {
		req.Header.Set(correlation.Header, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return errs.NewUpstreamTimeoutError(serviceName, err)
		}
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return errs.NewUpstreamTimeoutError(serviceName, err)
		}
		return errs.NewUpstreamUnavailableError(serviceName, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errs.NewUpstreamUnavailableError(serviceName, err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return errs.NewUpstreamUnavailableError(serviceName,
			fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode))
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return errs.NewUpstreamUnavailableError(serviceName, err)
	}
	if !envelope.Status || resp.StatusCode >= http.StatusBadRequest {
		c.logger.WarnContext(ctx, "provider rejected request",
			"method", method, "path", path,
			"status_code", resp.StatusCode, "message", envelope.Message)
		return errs.NewConflictError(envelope.Message)
	}

	return json.Unmarshal(envelope.Data, out)
}

func (c *Client) mockInitialize(reference string) ports.GatewayAuthorization {
	code := fmt.Sprintf("mock_%06d", rand.IntN(1000000))
	return ports.GatewayAuthorization{
		Reference:        reference,
		AuthorizationURL: "https://checkout.paystack.com/" + code,
		AccessCode:       code,
	}
}

func (c *Client) mockVerify(reference string) (ports.GatewayTransaction, error) {
	amount, err := kernel.NewMoney(1000, "GHS")
	if err != nil {
		return ports.GatewayTransaction{}, err
	}

	now := time.Now().UTC()
	return ports.GatewayTransaction{
		Reference:       reference,
		Status:          ports.GatewayStatusSuccess,
		Amount:          amount,
		Channel:         "mobile_money",
		GatewayResponse: "Successful",
		PaidAt:          &now,
	}, nil
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}
