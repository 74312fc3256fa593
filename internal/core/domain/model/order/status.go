package order

import "marketplace/internal/pkg/statemachine"

// Status values for the order lifecycle. Statuses are persisted and
// serialized as these plain strings.
const (
	StatusPending    = "pending"
	StatusPaid       = "paid"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
	StatusRefunded   = "refunded"
)

// StateMachine is the order transition relation, validated once at package
// initialization. Requesting the current status again is an idempotent no-op;
// cancelled and refunded are terminal.
var StateMachine = statemachine.MustNew("order", map[string][]string{
	StatusPending:    {StatusPaid, StatusCancelled},
	StatusPaid:       {StatusProcessing, StatusRefunded},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {StatusRefunded},
	StatusCancelled:  {},
	StatusRefunded:   {},
})
