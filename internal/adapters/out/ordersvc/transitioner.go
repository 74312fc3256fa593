// Package ordersvc implements the order transitioner port. The local
// implementation invokes the order coordinator in process; deployments that
// split the coordinators onto separate services swap in an HTTP client behind
// the same port.
package ordersvc

import (
	"context"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
)

// LocalTransitioner drives order status changes through the in-process
// transition command handler.
type LocalTransitioner struct {
	handler commands.TransitionOrderCommandHandler
}

// NewLocalTransitioner creates an in-process order transitioner.
func NewLocalTransitioner(handler commands.TransitionOrderCommandHandler) *LocalTransitioner {
	return &LocalTransitioner{handler: handler}
}

// TransitionOrder moves the order to the target status. Repeating the current
// status is a no-op, which keeps saga callbacks retry-safe.
func (t *LocalTransitioner) TransitionOrder(ctx context.Context, orderID kernel.UUID, target, notes string) error {
	cmd, err := commands.NewTransitionOrderCommand(orderID, target, notes)
	if err != nil {
		return err
	}
	return t.handler.Handle(ctx, cmd)
}
