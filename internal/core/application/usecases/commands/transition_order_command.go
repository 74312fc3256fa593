package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand requests an order status change. Targets are
// validated against the order state machine up front so undeclared statuses
// never reach a handler.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  string
	notes   string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to move an order to target.
func NewTransitionOrderCommand(orderID kernel.UUID, target, notes string) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order identifier.
func (c TransitionOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Target returns the requested status.
func (c TransitionOrderCommand) Target() string { return c.target }

// Notes returns the optional free-form notes for the change.
func (c TransitionOrderCommand) Notes() string { return c.notes }

func (c *TransitionOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *TransitionOrderCommand) setTarget(target string) error {
	if !order.StateMachine.IsState(target) {
		return errs.NewValueIsInvalidError("target status")
	}
	c.target = target
	return nil
}
