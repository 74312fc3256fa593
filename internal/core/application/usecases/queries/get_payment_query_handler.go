package queries

import (
	"context"
	"errors"

	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetPaymentQueryHandler reads a single payment from the database.
type GetPaymentQueryHandler struct {
	db *gorm.DB
}

// NewGetPaymentQueryHandler creates a handler for payment lookups by id.
func NewGetPaymentQueryHandler(db *gorm.DB) GetPaymentQueryHandler {
	return GetPaymentQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError for unknown ids.
func (h GetPaymentQueryHandler) Handle(ctx context.Context, query GetPaymentQuery) (PaymentResponse, error) {
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
		WHERE id = ?
	`, query.PaymentID().String()).First(&response).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return PaymentResponse{}, errs.NewObjectNotFoundError("payment", query.PaymentID())
	}
	if err != nil {
		return PaymentResponse{}, err
	}

	return response, nil
}
