// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence.
package deliveryrepo

import (
	"time"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
type DeliveryDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	RiderID       *uuid.UUID `gorm:"type:uuid;index"`
	TrackingCode  string     `gorm:"uniqueIndex"`
	PickupLat     float64
	PickupLon     float64
	DropoffLat    float64
	DropoffLon    float64
	CustomerName  string
	CustomerPhone string
	Status        string `gorm:"index"`
	AssignedAt    *time.Time
	Eta           *time.Time
	PickedUpAt    *time.Time
	DeliveredAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides GORM's default naming to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var riderID *uuid.UUID
	if id := aggregate.RiderID(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	return DeliveryDTO{
		ID:            aggregate.ID().Bytes(),
		OrderID:       aggregate.OrderID().Bytes(),
		RiderID:       riderID,
		TrackingCode:  aggregate.TrackingCode(),
		PickupLat:     aggregate.Pickup().Latitude(),
		PickupLon:     aggregate.Pickup().Longitude(),
		DropoffLat:    aggregate.Dropoff().Latitude(),
		DropoffLon:    aggregate.Dropoff().Longitude(),
		CustomerName:  aggregate.Contact().Name(),
		CustomerPhone: aggregate.Contact().Phone(),
		Status:        aggregate.Status(),
		AssignedAt:    aggregate.AssignedAt(),
		Eta:           aggregate.Eta(),
		PickedUpAt:    aggregate.PickedUpAt(),
		DeliveredAt:   aggregate.DeliveredAt(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	pickup, err := kernel.NewGeoPoint(dto.PickupLat, dto.PickupLon)
	if err != nil {
		return nil, err
	}
	dropoff, err := kernel.NewGeoPoint(dto.DropoffLat, dto.DropoffLon)
	if err != nil {
		return nil, err
	}
	contact, err := kernel.NewContact(dto.CustomerName, dto.CustomerPhone, "")
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id, orderID, riderID,
		dto.TrackingCode, pickup, dropoff, contact, dto.Status,
		dto.AssignedAt, dto.Eta, dto.PickedUpAt, dto.DeliveredAt,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
