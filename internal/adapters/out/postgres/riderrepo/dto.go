// Package riderrepo provides data transfer objects and mapping functions for
// rider persistence, including the conditional claim that guards dispatch
// against concurrent assignment.
package riderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO represents the database structure for persisting rider aggregates.
type RiderDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                string
	Phone               string
	Email               string
	VehicleType         string
	VehicleNumber       string
	Status              string `gorm:"index"`
	Lat                 float64
	Lon                 float64
	DeliveriesCompleted int
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName overrides GORM's default naming to use "riders".
func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(aggregate *rider.Rider) RiderDTO {
	return RiderDTO{
		ID:                  aggregate.ID().Bytes(),
		Name:                aggregate.Contact().Name(),
		Phone:               aggregate.Contact().Phone(),
		Email:               aggregate.Contact().Email(),
		VehicleType:         aggregate.VehicleType(),
		VehicleNumber:       aggregate.VehicleNumber(),
		Status:              aggregate.Status(),
		Lat:                 aggregate.Position().Latitude(),
		Lon:                 aggregate.Position().Longitude(),
		DeliveriesCompleted: aggregate.DeliveriesCompleted(),
		IsActive:            aggregate.IsActive(),
		CreatedAt:           aggregate.CreatedAt(),
		UpdatedAt:           aggregate.UpdatedAt(),
	}
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	contact, err := kernel.NewContact(dto.Name, dto.Phone, dto.Email)
	if err != nil {
		return nil, err
	}
	position, err := kernel.NewGeoPoint(dto.Lat, dto.Lon)
	if err != nil {
		return nil, err
	}

	return rider.RestoreRider(
		id, contact, dto.VehicleType, dto.VehicleNumber,
		dto.Status, position, dto.DeliveriesCompleted, dto.IsActive,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
