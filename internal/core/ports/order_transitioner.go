package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// OrderTransitioner propagates order status changes on behalf of the payment
// and delivery coordinators. Implementations may call the order coordinator
// over HTTP or invoke it in process; callers wrap invocations in a bounded
// retry either way.
type OrderTransitioner interface {
	// TransitionOrder moves the order to the target status. Repeating the
	// order's current status must succeed as a no-op.
	TransitionOrder(ctx context.Context, orderID kernel.UUID, target string, notes string) error
}
