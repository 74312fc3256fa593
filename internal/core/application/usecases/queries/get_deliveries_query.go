package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetDeliveriesQueryIsNotConstructed = errors.New(
	"GetDeliveriesQuery must be created via NewGetDeliveriesQuery constructor",
)

// GetDeliveriesQuery lists deliveries, optionally narrowed by status and
// rider. Dispatch operators use it to watch the active fleet.
type GetDeliveriesQuery struct {
	status  string
	riderID *kernel.UUID
	limit   int
	offset  int

	guard guard.ConstructorGuard
}

// NewGetDeliveriesQuery creates a filtered delivery listing. Empty status
// matches every status; nil riderID matches every rider.
func NewGetDeliveriesQuery(status string, riderID *kernel.UUID, limit, offset int) (GetDeliveriesQuery, error) {
	if status != "" && !delivery.StateMachine.IsState(status) {
		return GetDeliveriesQuery{}, errs.NewValueIsInvalidError("status")
	}
	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return GetDeliveriesQuery{}, err
		}
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > maxPageSize {
		return GetDeliveriesQuery{}, errs.NewValueIsInvalidError("limit")
	}
	if offset < 0 {
		return GetDeliveriesQuery{}, errs.NewValueIsInvalidError("offset")
	}

	return GetDeliveriesQuery{
		status:  status,
		riderID: riderID,
		limit:   limit,
		offset:  offset,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveriesQueryIsNotConstructed)
}

// Status returns the status filter, possibly empty.
func (q GetDeliveriesQuery) Status() string { return q.status }

// RiderID returns the rider filter, possibly nil.
func (q GetDeliveriesQuery) RiderID() *kernel.UUID { return q.riderID }

// Limit returns the page size.
func (q GetDeliveriesQuery) Limit() int { return q.limit }

// Offset returns the page offset.
func (q GetDeliveriesQuery) Offset() int { return q.offset }
