package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetDeliveriesQueryHandler lists deliveries from the database.
type GetDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveriesQueryHandler creates a handler for delivery listings.
func NewGetDeliveriesQueryHandler(db *gorm.DB) GetDeliveriesQueryHandler {
	return GetDeliveriesQueryHandler{db: db}
}

// Handle executes the query, newest deliveries first.
func (h GetDeliveriesQueryHandler) Handle(ctx context.Context, query GetDeliveriesQuery) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("deliveries").Select(`
		id, order_id, rider_id, tracking_code,
		pickup_lat, pickup_lon, dropoff_lat, dropoff_lon,
		status, assigned_at, eta, picked_up_at, delivered_at,
		created_at, updated_at
	`)
	if query.Status() != "" {
		tx = tx.Where("status = ?", query.Status())
	}
	if query.RiderID() != nil {
		tx = tx.Where("rider_id = ?", query.RiderID().String())
	}

	responses := make([]DeliveryResponse, 0)
	err := tx.Order("created_at DESC").
		Limit(query.Limit()).
		Offset(query.Offset()).
		Scan(&responses).Error
	if err != nil {
		return nil, err
	}

	return responses, nil
}
