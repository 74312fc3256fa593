package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment aggregates.
// The provider reference carries a unique constraint; Add and Update surface
// violations as errs.ConflictError.
type PaymentRepository interface {
	// Add persists a new payment aggregate to storage.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Update persists changes to an existing payment aggregate.
	Update(ctx context.Context, aggregate *payment.Payment) error

	// Get retrieves a payment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetByProviderRef retrieves the payment carrying the provider-assigned
	// reference. This is the lookup webhooks are served by.
	GetByProviderRef(ctx context.Context, providerRef string) (*payment.Payment, error)

	// GetActiveByOrder retrieves the non-terminal payment for an order, if
	// one exists. Used to keep payment initiation idempotent per order.
	GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)

	// GetLatestByOrder retrieves the most recent payment for an order,
	// terminal or not. Delivery events use it to reach the payer.
	GetLatestByOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)

	// GetStaleNonTerminal retrieves non-terminal payments last touched before
	// the cutoff. The reconciliation job re-verifies them with the provider.
	GetStaleNonTerminal(ctx context.Context, cutoff time.Time) ([]*payment.Payment, error)
}
