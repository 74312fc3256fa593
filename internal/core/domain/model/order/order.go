package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly
// validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root for one purchase. It carries a snapshot of the
// unit price taken at checkout time and the amount computed from it, which is
// immutable once set.
//
// Invariants:
//   - amount == unit price snapshot × quantity
//   - status changes only through Transition, validated by StateMachine
//   - terminal orders (cancelled, refunded, delivered) are retained for audit,
//     never deleted
type Order struct {
	id        kernel.UUID
	buyerID   kernel.UUID
	vendorID  kernel.UUID
	partID    kernel.UUID
	quantity  int
	unitPrice kernel.Money
	amount    kernel.Money
	address   Address
	status    string

	// paymentRef is the provider-facing payment reference, set once the
	// payment coordinator reports it.
	paymentRef string
	// deliveryID links the order to its delivery, set on assignment.
	deliveryID *kernel.UUID

	notes     string
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an order in pending status, computing the amount from the
// unit price snapshot and quantity.
func NewOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	vendorID kernel.UUID,
	partID kernel.UUID,
	quantity int,
	unitPrice kernel.Money,
	address Address,
) (*Order, error) {
	o := &Order{
		status: StatusPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyerID(buyerID),
		o.setVendorID(vendorID),
		o.setPartID(partID),
		o.setQuantity(quantity),
		o.setUnitPrice(unitPrice),
		o.setAddress(address),
	); err != nil {
		return nil, err
	}

	amount, err := unitPrice.MultiplyBy(quantity)
	if err != nil {
		return nil, err
	}
	o.amount = amount

	now := time.Now().UTC()
	o.createdAt = now
	o.updatedAt = now

	return o, nil
}

// RestoreOrder reconstructs an order from persistent storage, preserving its
// status, references, and timestamps. The amount invariant is re-checked on
// restore.
func RestoreOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	vendorID kernel.UUID,
	partID kernel.UUID,
	quantity int,
	unitPrice kernel.Money,
	amount kernel.Money,
	address Address,
	status string,
	paymentRef string,
	deliveryID *kernel.UUID,
	notes string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyerID(buyerID),
		o.setVendorID(vendorID),
		o.setPartID(partID),
		o.setQuantity(quantity),
		o.setUnitPrice(unitPrice),
		o.setAddress(address),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	expected, err := unitPrice.MultiplyBy(quantity)
	if err != nil {
		return nil, err
	}
	if !expected.IsEqual(amount) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s does not equal %s", amount, expected))
	}
	o.amount = amount

	if deliveryID != nil {
		if err = deliveryID.Validate(); err != nil {
			return nil, err
		}
		copied := *deliveryID
		o.deliveryID = &copied
	}

	o.paymentRef = paymentRef
	o.notes = notes
	o.createdAt = createdAt
	o.updatedAt = updatedAt

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// BuyerID returns the buyer identifier.
func (o *Order) BuyerID() kernel.UUID { return o.buyerID }

// VendorID returns the vendor identifier.
func (o *Order) VendorID() kernel.UUID { return o.vendorID }

// PartID returns the purchased part reference.
func (o *Order) PartID() kernel.UUID { return o.partID }

// Quantity returns the ordered quantity.
func (o *Order) Quantity() int { return o.quantity }

// UnitPrice returns the unit price snapshot taken at checkout.
func (o *Order) UnitPrice() kernel.Money { return o.unitPrice }

// Amount returns the immutable computed amount.
func (o *Order) Amount() kernel.Money { return o.amount }

// Address returns the shipping address.
func (o *Order) Address() Address { return o.address }

// Status returns the current status string.
func (o *Order) Status() string { return o.status }

// PaymentRef returns the provider payment reference, possibly empty.
func (o *Order) PaymentRef() string { return o.paymentRef }

// DeliveryID returns the linked delivery identifier, or nil.
func (o *Order) DeliveryID() *kernel.UUID { return o.deliveryID }

// Notes returns the free-form notes.
func (o *Order) Notes() string { return o.notes }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Transition moves the order to target if the state machine allows it.
// Requesting the current status again succeeds without mutating anything and
// reports changed=false, so retried transition requests stay idempotent.
// Notes, when non-empty, replace the stored notes on an actual change.
func (o *Order) Transition(target string, notes string) (changed bool, err error) {
	if err = o.Validate(); err != nil {
		return false, err
	}

	if err = StateMachine.Check(o.status, target); err != nil {
		return false, err
	}

	if StateMachine.IsNoOp(o.status, target) {
		return false, nil
	}

	o.status = target
	if notes != "" {
		o.notes = notes
	}
	o.updatedAt = time.Now().UTC()
	return true, nil
}

// AttachPaymentRef records the provider payment reference on the order.
func (o *Order) AttachPaymentRef(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("payment reference")
	}
	o.paymentRef = ref
	o.updatedAt = time.Now().UTC()
	return nil
}

// AttachDelivery links the order to its delivery.
func (o *Order) AttachDelivery(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	o.deliveryID = &deliveryID
	o.updatedAt = time.Now().UTC()
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBuyerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.buyerID = id
	return nil
}

func (o *Order) setVendorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.vendorID = id
	return nil
}

func (o *Order) setPartID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.partID = id
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	o.unitPrice = unitPrice
	return nil
}

func (o *Order) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setStatus(status string) error {
	if !StateMachine.IsState(status) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%q is not an order status", status))
	}
	o.status = status
	return nil
}
