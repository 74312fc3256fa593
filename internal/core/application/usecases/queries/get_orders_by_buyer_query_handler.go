package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrdersByBuyerQueryHandler lists a buyer's orders from the database.
type GetOrdersByBuyerQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByBuyerQueryHandler creates a handler for buyer order listings.
func NewGetOrdersByBuyerQueryHandler(db *gorm.DB) GetOrdersByBuyerQueryHandler {
	return GetOrdersByBuyerQueryHandler{db: db}
}

// Handle executes the query. An empty page is a valid result.
func (h GetOrdersByBuyerQueryHandler) Handle(ctx context.Context, query GetOrdersByBuyerQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("orders").Select(`
		id, buyer_id, vendor_id, part_id, quantity,
		unit_price, amount, currency,
		address_line, address_city, address_region,
		status, payment_ref, delivery_id, notes,
		created_at, updated_at
	`).Where("buyer_id = ?", query.BuyerID().String())
	if query.Status() != "" {
		tx = tx.Where("status = ?", query.Status())
	}

	responses := make([]OrderResponse, 0)
	err := tx.Order("created_at DESC").
		Limit(query.Limit()).
		Offset(query.Offset()).
		Scan(&responses).Error
	if err != nil {
		return nil, err
	}

	return responses, nil
}
