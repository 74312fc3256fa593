package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrInitiatePaymentCommandIsNotConstructed = errors.New(
	"InitiatePaymentCommand must be created via NewInitiatePaymentCommand constructor",
)

// InitiatePaymentCommand requests a payment authorization for a pending
// order. Initiation is idempotent per order: while a non-terminal payment
// exists, repeat requests return its authorization instead of opening a
// second provider transaction.
type InitiatePaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID  kernel.UUID
	orderID    kernel.UUID
	payerEmail string

	guard guard.ConstructorGuard
}

// NewInitiatePaymentCommand creates a command to start payment for an order.
func NewInitiatePaymentCommand(paymentID, orderID kernel.UUID, payerEmail string) (InitiatePaymentCommand, error) {
	cmd := InitiatePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPaymentID(paymentID),
		cmd.setOrderID(orderID),
		cmd.setPayerEmail(payerEmail),
	); err != nil {
		return InitiatePaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c InitiatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrInitiatePaymentCommandIsNotConstructed)
}

// PaymentID returns the identifier for the payment to create.
func (c InitiatePaymentCommand) PaymentID() kernel.UUID { return c.paymentID }

// OrderID returns the order being paid for.
func (c InitiatePaymentCommand) OrderID() kernel.UUID { return c.orderID }

// PayerEmail returns the buyer contact passed to the provider.
func (c InitiatePaymentCommand) PayerEmail() string { return c.payerEmail }

func (c *InitiatePaymentCommand) setPaymentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.paymentID = id
	return nil
}

func (c *InitiatePaymentCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *InitiatePaymentCommand) setPayerEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("payer email")
	}
	c.payerEmail = email
	return nil
}

// InitiatePaymentResult carries the authorization handle back to the buyer.
type InitiatePaymentResult struct {
	PaymentID        kernel.UUID
	Reference        string
	AuthorizationURL string
	AccessCode       string
}
