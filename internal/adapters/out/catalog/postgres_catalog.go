package catalog

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartDTO represents the database structure of the local parts table.
type PartDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	VendorID   uuid.UUID `gorm:"type:uuid;index"`
	Name       string
	PartNumber string
	UnitPrice  float64 `gorm:"type:numeric(12,2)"`
	Currency   string  `gorm:"type:varchar(3)"`
	PickupLat  float64
	PickupLon  float64
	StockCount int
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides GORM's default naming to use "parts".
func (PartDTO) TableName() string {
	return "parts"
}

// PostgresCatalog reads parts from the local database. Used when no remote
// catalog service is configured.
type PostgresCatalog struct {
	db *gorm.DB
}

// NewPostgresCatalog creates a database-backed part catalog.
func NewPostgresCatalog(db *gorm.DB) *PostgresCatalog {
	return &PostgresCatalog{db: db}
}

// GetPart retrieves the current snapshot of a part. A part is in stock when
// it is active and has remaining inventory.
func (c *PostgresCatalog) GetPart(ctx context.Context, id kernel.UUID) (ports.PartSnapshot, error) {
	if err := id.Validate(); err != nil {
		return ports.PartSnapshot{}, err
	}

	var dto PartDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.PartSnapshot{}, errs.NewObjectNotFoundError("part", id.String())
		}
		return ports.PartSnapshot{}, err
	}

	partID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.PartSnapshot{}, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return ports.PartSnapshot{}, err
	}
	unitPrice, err := kernel.NewMoney(dto.UnitPrice, dto.Currency)
	if err != nil {
		return ports.PartSnapshot{}, err
	}
	pickup, err := kernel.NewGeoPoint(dto.PickupLat, dto.PickupLon)
	if err != nil {
		return ports.PartSnapshot{}, err
	}

	return ports.PartSnapshot{
		ID:             partID,
		VendorID:       vendorID,
		Name:           dto.Name,
		UnitPrice:      unitPrice,
		PickupLocation: pickup,
		InStock:        dto.IsActive && dto.StockCount > 0,
		StockCount:     dto.StockCount,
	}, nil
}
