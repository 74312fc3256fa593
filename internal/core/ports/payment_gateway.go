package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// GatewayAuthorization is the handle returned by transaction initialization.
// The buyer completes payment at the authorization URL; the reference is what
// all later verification keys on.
type GatewayAuthorization struct {
	Reference        string
	AuthorizationURL string
	AccessCode       string
}

// GatewayTransaction is the provider's authoritative view of a transaction,
// obtained by server-side verification. Webhook payloads are never trusted
// directly; only this verified view changes payment state.
type GatewayTransaction struct {
	Reference       string
	Status          string
	Amount          kernel.Money
	Channel         string
	GatewayResponse string
	PaidAt          *time.Time
}

// Gateway transaction statuses as reported by verification.
const (
	GatewayStatusSuccess   = "success"
	GatewayStatusFailed    = "failed"
	GatewayStatusAbandoned = "abandoned"
	GatewayStatusPending   = "pending"
)

// PaymentGateway is the outbound contract to the payment provider.
// Transport failures surface as errs.UpstreamError so handlers can map them
// to retryable responses.
type PaymentGateway interface {
	// Initialize creates a provider transaction for the amount and returns
	// the authorization handle.
	Initialize(ctx context.Context, email string, amount kernel.Money, reference string) (GatewayAuthorization, error)

	// Verify fetches the provider's current view of the transaction.
	Verify(ctx context.Context, reference string) (GatewayTransaction, error)
}
