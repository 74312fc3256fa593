package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrdersByBuyerQueryIsNotConstructed = errors.New(
	"GetOrdersByBuyerQuery must be created via NewGetOrdersByBuyerQuery constructor",
)

// maxPageSize caps listing pages.
const maxPageSize = 100

// GetOrdersByBuyerQuery retrieves a buyer's orders, newest first.
type GetOrdersByBuyerQuery struct {
	buyerID kernel.UUID
	status  string
	limit   int
	offset  int

	guard guard.ConstructorGuard
}

// NewGetOrdersByBuyerQuery creates a paged query over a buyer's orders,
// optionally narrowed to one status. A non-positive limit falls back to 20.
func NewGetOrdersByBuyerQuery(buyerID kernel.UUID, status string, limit, offset int) (GetOrdersByBuyerQuery, error) {
	if err := buyerID.Validate(); err != nil {
		return GetOrdersByBuyerQuery{}, err
	}
	if status != "" && !order.StateMachine.IsState(status) {
		return GetOrdersByBuyerQuery{}, errs.NewValueIsInvalidError("status")
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > maxPageSize {
		return GetOrdersByBuyerQuery{}, errs.NewValueIsInvalidError("limit")
	}
	if offset < 0 {
		return GetOrdersByBuyerQuery{}, errs.NewValueIsInvalidError("offset")
	}

	return GetOrdersByBuyerQuery{
		buyerID: buyerID,
		status:  status,
		limit:   limit,
		offset:  offset,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByBuyerQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByBuyerQueryIsNotConstructed)
}

// BuyerID returns the buyer whose orders are listed.
func (q GetOrdersByBuyerQuery) BuyerID() kernel.UUID { return q.buyerID }

// Status returns the optional status filter, empty for all statuses.
func (q GetOrdersByBuyerQuery) Status() string { return q.status }

// Limit returns the page size.
func (q GetOrdersByBuyerQuery) Limit() int { return q.limit }

// Offset returns the page offset.
func (q GetOrdersByBuyerQuery) Offset() int { return q.offset }
