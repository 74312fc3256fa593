package ordersvc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/correlation"
	"marketplace/internal/pkg/errs"
)

// HTTPTransitioner calls the order coordinator's status endpoint over HTTP.
// Used when the coordinators are deployed as separate services.
type HTTPTransitioner struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
}

// NewHTTPTransitioner creates a transitioner against the order service at
// baseURL.
func NewHTTPTransitioner(baseURL, authToken string) *HTTPTransitioner {
	return &HTTPTransitioner{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		authToken:  authToken,
	}
}

type transitionRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// TransitionOrder moves the order to the target status via
// PATCH /orders/{id}/status, propagating the correlation identifier.
func (t *HTTPTransitioner) TransitionOrder(ctx context.Context, orderID kernel.UUID, target, notes string) error {
	payload, err := json.Marshal(transitionRequest{Status: target, Notes: notes})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/orders/%s/status", t.baseURL, orderID.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.authToken)
	}
	if id := correlation.FromContext(ctx); id != "" {
		req.Header.Set(correlation.Header, id)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return errs.NewUpstreamTimeoutError("order-service", err)
		}
		return errs.NewUpstreamUnavailableError("order-service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return errs.NewUpstreamUnavailableError("order-service",
			fmt.Errorf("transition: status %d", resp.StatusCode))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errs.NewConflictError(
			fmt.Sprintf("order service rejected transition: status %d: %s", resp.StatusCode, body))
	}

	return nil
}
