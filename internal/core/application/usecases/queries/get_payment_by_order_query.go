package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetPaymentByOrderQueryIsNotConstructed = errors.New(
	"GetPaymentByOrderQuery must be created via NewGetPaymentByOrderQuery constructor",
)

// GetPaymentByOrderQuery retrieves the latest payment attempt for an order.
type GetPaymentByOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPaymentByOrderQuery creates a query for an order's payment.
func NewGetPaymentByOrderQuery(orderID kernel.UUID) (GetPaymentByOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPaymentByOrderQuery{}, err
	}

	return GetPaymentByOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPaymentByOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentByOrderQueryIsNotConstructed)
}

// OrderID returns the order whose payment is requested.
func (q GetPaymentByOrderQuery) OrderID() kernel.UUID { return q.orderID }

// PaymentResponse is the payment read model. The authorization URL is only
// present while the payment can still be completed.
type PaymentResponse struct {
	ID               string     `json:"id"`
	OrderID          string     `json:"order_id"`
	Amount           float64    `json:"amount"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	Provider         string     `json:"provider"`
	ProviderRef      string     `json:"provider_ref,omitempty"`
	AuthorizationURL string     `json:"authorization_url,omitempty"`
	Channel          string     `json:"channel,omitempty"`
	GatewayResponse  string     `json:"gateway_response,omitempty"`
	ErrorMessage     string     `json:"error_message,omitempty"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
