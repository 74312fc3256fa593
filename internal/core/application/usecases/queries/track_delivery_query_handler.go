package queries

import (
	"context"
	"errors"

	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// TrackDeliveryQueryHandler serves buyer tracking lookups.
type TrackDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewTrackDeliveryQueryHandler creates a handler for tracking lookups.
func NewTrackDeliveryQueryHandler(db *gorm.DB) TrackDeliveryQueryHandler {
	return TrackDeliveryQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError for unknown codes.
func (h TrackDeliveryQueryHandler) Handle(ctx context.Context, query TrackDeliveryQuery) (DeliveryResponse, error) {
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
		WHERE tracking_code = ?
	`, query.TrackingCode()).First(&response).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DeliveryResponse{}, errs.NewObjectNotFoundError("tracking_code", query.TrackingCode())
	}
	if err != nil {
		return DeliveryResponse{}, err
	}

	return response, nil
}
