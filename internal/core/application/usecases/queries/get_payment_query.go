package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetPaymentQueryIsNotConstructed = errors.New(
	"GetPaymentQuery must be created via NewGetPaymentQuery constructor",
)

// GetPaymentQuery retrieves one payment by its identifier.
type GetPaymentQuery struct {
	paymentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPaymentQuery creates a query for a single payment.
func NewGetPaymentQuery(paymentID kernel.UUID) (GetPaymentQuery, error) {
	if err := paymentID.Validate(); err != nil {
		return GetPaymentQuery{}, err
	}

	return GetPaymentQuery{
		paymentID: paymentID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPaymentQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentQueryIsNotConstructed)
}

// PaymentID returns the requested payment identifier.
func (q GetPaymentQuery) PaymentID() kernel.UUID { return q.paymentID }
