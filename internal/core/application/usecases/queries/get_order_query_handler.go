package queries

import (
	"context"
	"errors"

	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order straight from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the order
// does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	var response OrderResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, buyer_id, vendor_id, part_id, quantity,
			unit_price, amount, currency,
			address_line, address_city, address_region,
			status, payment_ref, delivery_id, notes,
			created_at, updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).First(&response).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return OrderResponse{}, errs.NewObjectNotFoundError("order_id", query.OrderID())
	}
	if err != nil {
		return OrderResponse{}, err
	}

	return response, nil
}
