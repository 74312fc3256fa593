package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrAssignDeliveryCommandIsNotConstructed = errors.New(
	"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
)

// AssignDeliveryCommand requests a delivery for a paid order. The dropoff
// coordinates and customer contact are captured at checkout; the pickup
// point comes from the vendor's catalog entry.
type AssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	orderID    kernel.UUID
	dropoff    kernel.GeoPoint
	contact    kernel.Contact

	guard guard.ConstructorGuard
}

// NewAssignDeliveryCommand creates a command to dispatch a rider for an order.
func NewAssignDeliveryCommand(
	deliveryID, orderID kernel.UUID,
	dropoff kernel.GeoPoint,
	contact kernel.Contact,
) (AssignDeliveryCommand, error) {
	cmd := AssignDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setOrderID(orderID),
		cmd.setDropoff(dropoff),
		cmd.setContact(contact),
	); err != nil {
		return AssignDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier for the delivery to create.
func (c AssignDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// OrderID returns the order to ship.
func (c AssignDeliveryCommand) OrderID() kernel.UUID { return c.orderID }

// Dropoff returns the buyer's dropoff point.
func (c AssignDeliveryCommand) Dropoff() kernel.GeoPoint { return c.dropoff }

// Contact returns the customer the rider calls at the drop-off point.
func (c AssignDeliveryCommand) Contact() kernel.Contact { return c.contact }

func (c *AssignDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *AssignDeliveryCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *AssignDeliveryCommand) setDropoff(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	c.dropoff = point
	return nil
}

func (c *AssignDeliveryCommand) setContact(contact kernel.Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	c.contact = contact
	return nil
}

// AssignDeliveryResult identifies the created delivery and the claimed rider.
type AssignDeliveryResult struct {
	DeliveryID   kernel.UUID
	RiderID      kernel.UUID
	TrackingCode string
}
