// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the aggregates and read optimized models straight from the
// database.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order by identifier.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderResponse is the order read model.
type OrderResponse struct {
	ID            string     `json:"id"`
	BuyerID       string     `json:"buyer_id"`
	VendorID      string     `json:"vendor_id"`
	PartID        string     `json:"part_id"`
	Quantity      int        `json:"quantity"`
	UnitPrice     float64    `json:"unit_price"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	AddressLine   string     `json:"address_line"`
	AddressCity   string     `json:"address_city"`
	AddressRegion string     `json:"address_region,omitempty"`
	Status        string     `json:"status"`
	PaymentRef    string     `json:"payment_ref,omitempty"`
	DeliveryID    *string    `json:"delivery_id,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
