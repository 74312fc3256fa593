package payment

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Status values for the payment lifecycle, stored as plain strings.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusSuccess    = "success"
	StatusFailed     = "failed"
	StatusRefunded   = "refunded"
)

// ProviderPaystack is the only payment provider currently wired.
const ProviderPaystack = "paystack"

// ErrPaymentIsNotConstructed is returned when a Payment was not created via
// NewPayment or RestorePayment.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment constructor")

// Payment records one charge attempt for an order. At most one non-terminal
// payment exists per order; re-initiating payment for that order returns the
// existing authorization handle instead of creating a duplicate.
type Payment struct {
	id         kernel.UUID
	orderID    kernel.UUID
	amount     kernel.Money
	status     string
	provider   string
	payerEmail string

	// providerRef is the provider-assigned transaction reference, unique
	// across payments. It is the key webhooks are matched on.
	providerRef      string
	authorizationURL string
	channel          string
	gatewayResponse  string
	errorMessage     string
	paidAt           *time.Time

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewPayment creates a payment in pending status. Amount must be positive.
func NewPayment(id, orderID kernel.UUID, amount kernel.Money, payerEmail string) (*Payment, error) {
	p := &Payment{
		status:   StatusPending,
		provider: ProviderPaystack,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setAmount(amount),
		p.setPayerEmail(payerEmail),
	); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.createdAt = now
	p.updatedAt = now

	return p, nil
}

// RestorePayment reconstructs a payment from persistent storage.
func RestorePayment(
	id, orderID kernel.UUID,
	amount kernel.Money,
	status string,
	provider string,
	payerEmail string,
	providerRef string,
	authorizationURL string,
	channel string,
	gatewayResponse string,
	errorMessage string,
	paidAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Payment, error) {
	p := &Payment{
		provider: provider,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setAmount(amount),
		p.setPayerEmail(payerEmail),
		p.setStatus(status),
	); err != nil {
		return nil, err
	}

	p.providerRef = providerRef
	p.authorizationURL = authorizationURL
	p.channel = channel
	p.gatewayResponse = gatewayResponse
	p.errorMessage = errorMessage
	if paidAt != nil {
		copied := *paidAt
		p.paidAt = &copied
	}
	p.createdAt = createdAt
	p.updatedAt = updatedAt

	return p, nil
}

// Validate ensures the Payment was created through a constructor.
func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// ID returns the payment identifier.
func (p *Payment) ID() kernel.UUID { return p.id }

// OrderID returns the paid-for order identifier.
func (p *Payment) OrderID() kernel.UUID { return p.orderID }

// Amount returns the charged amount.
func (p *Payment) Amount() kernel.Money { return p.amount }

// Status returns the current status string.
func (p *Payment) Status() string { return p.status }

// Provider returns the payment provider name.
func (p *Payment) Provider() string { return p.provider }

// PayerEmail returns the payer contact used by the provider.
func (p *Payment) PayerEmail() string { return p.payerEmail }

// ProviderRef returns the provider-assigned reference, empty until
// initialization completes.
func (p *Payment) ProviderRef() string { return p.providerRef }

// AuthorizationURL returns the redirect handle the buyer completes payment at.
func (p *Payment) AuthorizationURL() string { return p.authorizationURL }

// Channel returns the payment channel reported by the provider.
func (p *Payment) Channel() string { return p.channel }

// GatewayResponse returns the provider's response description.
func (p *Payment) GatewayResponse() string { return p.gatewayResponse }

// ErrorMessage returns the failure description, empty unless failed.
func (p *Payment) ErrorMessage() string { return p.errorMessage }

// PaidAt returns the provider-reported settlement time, or nil.
func (p *Payment) PaidAt() *time.Time { return p.paidAt }

// CreatedAt returns the creation timestamp.
func (p *Payment) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (p *Payment) UpdatedAt() time.Time { return p.updatedAt }

// IsTerminal reports whether the payment reached a final outcome. Terminal
// payments ignore further provider callbacks, which makes webhook handling
// idempotent under provider retry.
func (p *Payment) IsTerminal() bool {
	return p.status == StatusSuccess || p.status == StatusFailed || p.status == StatusRefunded
}

// AttachAuthorization records the provider reference and redirect handle
// obtained from transaction initialization.
func (p *Payment) AttachAuthorization(providerRef, authorizationURL string) error {
	if providerRef == "" {
		return errs.NewValueIsRequiredError("provider reference")
	}
	if authorizationURL == "" {
		return errs.NewValueIsRequiredError("authorization URL")
	}
	p.providerRef = providerRef
	p.authorizationURL = authorizationURL
	p.updatedAt = time.Now().UTC()
	return nil
}

// MarkProcessing records that the provider reports the transaction as still
// in flight.
func (p *Payment) MarkProcessing() error {
	if p.IsTerminal() {
		return errs.NewInvalidTransitionError("payment", p.status, StatusProcessing)
	}
	p.status = StatusProcessing
	p.updatedAt = time.Now().UTC()
	return nil
}

// MarkSuccess records a verified successful charge with the provider's
// settlement details.
func (p *Payment) MarkSuccess(channel, gatewayResponse string, paidAt time.Time) error {
	if p.IsTerminal() {
		return errs.NewInvalidTransitionError("payment", p.status, StatusSuccess)
	}
	p.status = StatusSuccess
	p.channel = channel
	p.gatewayResponse = gatewayResponse
	paid := paidAt.UTC()
	p.paidAt = &paid
	p.updatedAt = time.Now().UTC()
	return nil
}

// MarkFailed records a verified failed charge. The order is left untouched so
// the buyer can retry payment.
func (p *Payment) MarkFailed(errorMessage string) error {
	if p.IsTerminal() {
		return errs.NewInvalidTransitionError("payment", p.status, StatusFailed)
	}
	p.status = StatusFailed
	p.errorMessage = errorMessage
	p.updatedAt = time.Now().UTC()
	return nil
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.orderID = id
	return nil
}

func (p *Payment) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if amount.Amount() <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	p.amount = amount
	return nil
}

func (p *Payment) setPayerEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("payer email")
	}
	p.payerEmail = email
	return nil
}

func (p *Payment) setStatus(status string) error {
	switch status {
	case StatusPending, StatusProcessing, StatusSuccess, StatusFailed, StatusRefunded:
		p.status = status
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%q is not a payment status", status))
	}
}
