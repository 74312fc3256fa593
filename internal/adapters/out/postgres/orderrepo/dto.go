// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BuyerID       uuid.UUID  `gorm:"type:uuid;index"`
	VendorID      uuid.UUID  `gorm:"type:uuid;index"`
	PartID        uuid.UUID  `gorm:"type:uuid"`
	Quantity      int
	UnitPrice     float64 `gorm:"type:numeric(12,2)"`
	Amount        float64 `gorm:"type:numeric(12,2)"`
	Currency      string  `gorm:"type:varchar(3)"`
	AddressLine   string
	AddressCity   string
	AddressRegion string
	Status        string     `gorm:"index"`
	PaymentRef    string
	DeliveryID    *uuid.UUID `gorm:"type:uuid"`
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var deliveryID *uuid.UUID
	if id := aggregate.DeliveryID(); id != nil {
		raw := id.Bytes()
		deliveryID = &raw
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		BuyerID:       aggregate.BuyerID().Bytes(),
		VendorID:      aggregate.VendorID().Bytes(),
		PartID:        aggregate.PartID().Bytes(),
		Quantity:      aggregate.Quantity(),
		UnitPrice:     aggregate.UnitPrice().Amount(),
		Amount:        aggregate.Amount().Amount(),
		Currency:      aggregate.Amount().Currency(),
		AddressLine:   aggregate.Address().Line(),
		AddressCity:   aggregate.Address().City(),
		AddressRegion: aggregate.Address().Region(),
		Status:        aggregate.Status(),
		PaymentRef:    aggregate.PaymentRef(),
		DeliveryID:    deliveryID,
		Notes:         aggregate.Notes(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}
	partID, err := kernel.UUIDFromBytes(dto.PartID[:])
	if err != nil {
		return nil, err
	}

	var deliveryID *kernel.UUID
	if dto.DeliveryID != nil {
		dID, deliveryErr := kernel.UUIDFromBytes((*dto.DeliveryID)[:])
		if deliveryErr != nil {
			return nil, deliveryErr
		}
		deliveryID = &dID
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice, dto.Currency)
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount, dto.Currency)
	if err != nil {
		return nil, err
	}
	address, err := order.NewAddress(dto.AddressLine, dto.AddressCity, dto.AddressRegion)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, buyerID, vendorID, partID,
		dto.Quantity, unitPrice, amount, address,
		dto.Status, dto.PaymentRef, deliveryID, dto.Notes,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
