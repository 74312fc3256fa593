package queries

import (
	"context"
	"errors"

	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDeliveryQueryHandler reads a single delivery from the database.
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryQueryHandler creates a handler for delivery lookups by id.
func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError for unknown ids.
func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return DeliveryResponse{}, err
	}

	var response DeliveryResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, order_id, rider_id, tracking_code,
			pickup_lat, pickup_lon, dropoff_lat, dropoff_lon,
			status, assigned_at, eta, picked_up_at, delivered_at,
			created_at, updated_at
		FROM deliveries
		WHERE id = ?
	`, query.DeliveryID().String()).First(&response).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DeliveryResponse{}, errs.NewObjectNotFoundError("delivery", query.DeliveryID())
	}
	if err != nil {
		return DeliveryResponse{}, err
	}

	return response, nil
}
