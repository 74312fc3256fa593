// Package catalog implements the part catalog port. Two implementations are
// provided: an HTTP client for deployments with a separate catalog service,
// and a database-backed catalog reading a local parts table.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/correlation"
	"marketplace/internal/pkg/errs"
)

// HTTPClient resolves parts against a remote catalog service.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewHTTPClient creates a catalog client against the service at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

type partPayload struct {
	ID        string  `json:"id"`
	VendorID  string  `json:"vendor_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Currency  string  `json:"currency"`
	PickupLat  float64 `json:"pickup_lat"`
	PickupLon  float64 `json:"pickup_lon"`
	InStock    bool    `json:"in_stock"`
	StockCount int     `json:"stock_count"`
}

// GetPart retrieves the current snapshot of a part from the catalog service.
func (c *HTTPClient) GetPart(ctx context.Context, id kernel.UUID) (ports.PartSnapshot, error) {
	url := fmt.Sprintf("%s/parts/%s", c.baseURL, id.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.PartSnapshot{}, err
	}
	if corrID := correlation.FromContext(ctx); corrID != "" {
		req.Header.Set(correlation.Header, corrID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ports.PartSnapshot{}, errs.NewUpstreamTimeoutError("catalog", err)
		}
		return ports.PartSnapshot{}, errs.NewUpstreamUnavailableError("catalog", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ports.PartSnapshot{}, errs.NewObjectNotFoundError("part", id.String())
	case resp.StatusCode >= http.StatusInternalServerError:
		return ports.PartSnapshot{}, errs.NewUpstreamUnavailableError("catalog",
			fmt.Errorf("get part: status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return ports.PartSnapshot{}, errs.NewConflictError(
			fmt.Sprintf("catalog rejected part lookup: status %d", resp.StatusCode))
	}

	var payload partPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ports.PartSnapshot{}, errs.NewUpstreamUnavailableError("catalog", err)
	}

	return payload.toSnapshot()
}

func (p partPayload) toSnapshot() (ports.PartSnapshot, error) {
	id, err := kernel.UUIDFromString(p.ID)
	if err != nil {
		return ports.PartSnapshot{}, err
	}
	vendorID, err := kernel.UUIDFromString(p.VendorID)
	if err != nil {
		return ports.PartSnapshot{}, err
	}
	unitPrice, err := kernel.NewMoney(p.UnitPrice, p.Currency)
	if err != nil {
		return ports.PartSnapshot{}, err
	}
	pickup, err := kernel.NewGeoPoint(p.PickupLat, p.PickupLon)
	if err != nil {
		return ports.PartSnapshot{}, err
	}

	return ports.PartSnapshot{
		ID:             id,
		VendorID:       vendorID,
		Name:           p.Name,
		UnitPrice:      unitPrice,
		PickupLocation: pickup,
		InStock:        p.InStock,
		StockCount:     p.StockCount,
	}, nil
}
