package queries

import (
	"context"
	"errors"

	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetPaymentByOrderQueryHandler reads an order's latest payment attempt.
type GetPaymentByOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetPaymentByOrderQueryHandler creates a handler for payment lookups.
func NewGetPaymentByOrderQueryHandler(db *gorm.DB) GetPaymentByOrderQueryHandler {
	return GetPaymentByOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the order
// has no payment attempts.
func (h GetPaymentByOrderQueryHandler) Handle(ctx context.Context, query GetPaymentByOrderQuery) (PaymentResponse, error) {
	if err := query.Validate(); err != nil {
		return PaymentResponse{}, err
	}

	var response PaymentResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, order_id, amount, currency, status, provider,
			provider_ref, authorization_url, channel,
			gateway_response, error_message, paid_at,
			created_at, updated_at
		FROM payments
		WHERE order_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, query.OrderID().String()).First(&response).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return PaymentResponse{}, errs.NewObjectNotFoundError("order_id", query.OrderID())
	}
	if err != nil {
		return PaymentResponse{}, err
	}

	return response, nil
}
