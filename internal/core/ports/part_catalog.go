package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// PartSnapshot is the catalog's view of a part at checkout time. The unit
// price in the snapshot is what the order records; later catalog price
// changes do not affect existing orders.
type PartSnapshot struct {
	ID             kernel.UUID
	VendorID       kernel.UUID
	Name           string
	UnitPrice      kernel.Money
	PickupLocation kernel.GeoPoint
	InStock        bool
	StockCount     int
}

// PartCatalog resolves part references against the vendor catalog.
type PartCatalog interface {
	// GetPart retrieves the current snapshot of a part.
	// Returns errs.ObjectNotFoundError when the part does not exist.
	GetPart(ctx context.Context, id kernel.UUID) (PartSnapshot, error)
}
