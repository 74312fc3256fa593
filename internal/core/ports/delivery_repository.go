package ports

import (
	"context"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
)

// DeliveryFilter narrows delivery listings. Zero values match everything.
type DeliveryFilter struct {
	Status  string
	RiderID *kernel.UUID
}

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByTrackingCode retrieves a delivery by its buyer-facing tracking code.
	GetByTrackingCode(ctx context.Context, trackingCode string) (*delivery.Delivery, error)

	// GetByOrder retrieves the delivery shipping the given order, if any.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// GetAll retrieves deliveries matching the filter, newest first.
	GetAll(ctx context.Context, filter DeliveryFilter, limit, offset int) ([]*delivery.Delivery, error)
}
