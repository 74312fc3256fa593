package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	// Add persists a new rider aggregate to storage.
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Update persists changes to an existing rider aggregate.
	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)

	// GetNearestAvailable retrieves up to limit active available riders
	// ordered by distance to the point, nearest first. The returned riders
	// are candidates only; a claim must still succeed before assignment.
	GetNearestAvailable(ctx context.Context, point kernel.GeoPoint, limit int) ([]*rider.Rider, error)

	// TryClaim atomically flips the rider from available to busy. It returns
	// false without error when the rider was already claimed or went offline,
	// which is how concurrent dispatchers lose the race cleanly.
	TryClaim(ctx context.Context, id kernel.UUID) (bool, error)

	// Release returns a busy rider to the available pool, incrementing the
	// completed-delivery counter when completed is true.
	Release(ctx context.Context, id kernel.UUID, completed bool) error
}
