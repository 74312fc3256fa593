package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand reports shipment progress from a rider.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	target     string

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a command to move a delivery to target.
func NewUpdateDeliveryStatusCommand(deliveryID kernel.UUID, target string) (UpdateDeliveryStatusCommand, error) {
	cmd := UpdateDeliveryStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setTarget(target),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// DeliveryID returns the delivery identifier.
func (c UpdateDeliveryStatusCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// Target returns the requested status.
func (c UpdateDeliveryStatusCommand) Target() string { return c.target }

func (c *UpdateDeliveryStatusCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *UpdateDeliveryStatusCommand) setTarget(target string) error {
	if !delivery.StateMachine.IsState(target) {
		return errs.NewValueIsInvalidError("target status")
	}
	c.target = target
	return nil
}
