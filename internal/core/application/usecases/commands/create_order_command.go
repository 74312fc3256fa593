package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a buyer's request to purchase a part.
// The unit price is not part of the command: it is snapshotted from the
// catalog inside the handler so clients cannot influence the charged amount.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	buyerID    kernel.UUID
	partID     kernel.UUID
	quantity   int
	line       string
	city       string
	region     string
	buyerEmail string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
func NewCreateOrderCommand(
	orderID, buyerID, partID kernel.UUID,
	quantity int,
	line, city, region string,
	buyerEmail string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		region: region,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyerID(buyerID),
		cmd.setPartID(partID),
		cmd.setQuantity(quantity),
		cmd.setLine(line),
		cmd.setCity(city),
		cmd.setBuyerEmail(buyerEmail),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the client-supplied order identifier.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// BuyerID returns the buyer identifier.
func (c CreateOrderCommand) BuyerID() kernel.UUID { return c.buyerID }

// PartID returns the catalog part reference.
func (c CreateOrderCommand) PartID() kernel.UUID { return c.partID }

// Quantity returns the ordered quantity.
func (c CreateOrderCommand) Quantity() int { return c.quantity }

// Line returns the shipping address street line.
func (c CreateOrderCommand) Line() string { return c.line }

// City returns the shipping address city.
func (c CreateOrderCommand) City() string { return c.city }

// Region returns the shipping address region, possibly empty.
func (c CreateOrderCommand) Region() string { return c.region }

// BuyerEmail returns the address order notifications go to.
func (c CreateOrderCommand) BuyerEmail() string { return c.buyerEmail }

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setBuyerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.buyerID = id
	return nil
}

func (c *CreateOrderCommand) setPartID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.partID = id
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}
	c.quantity = quantity
	return nil
}

func (c *CreateOrderCommand) setLine(line string) error {
	if line == "" {
		return errs.NewValueIsRequiredError("address line")
	}
	c.line = line
	return nil
}

func (c *CreateOrderCommand) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	c.city = city
	return nil
}

func (c *CreateOrderCommand) setBuyerEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("buyer email")
	}
	c.buyerEmail = email
	return nil
}
