package commands

import (
	"errors"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand settles a payment after a provider callback.
// The webhook body contributes nothing but the reference; the outcome is
// always re-fetched from the provider before any state changes.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	reference string

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command to settle the referenced payment.
func NewConfirmPaymentCommand(reference string) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if reference == "" {
		return ConfirmPaymentCommand{}, errs.NewValueIsRequiredError("reference")
	}
	cmd.reference = reference

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// Reference returns the provider transaction reference.
func (c ConfirmPaymentCommand) Reference() string { return c.reference }
