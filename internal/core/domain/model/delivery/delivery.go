package delivery

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery was not created via
// NewDelivery or RestoreDelivery.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery constructor")

// Delivery is the shipment of one order. It is created in pending status
// without a rider; AssignRider binds the claimed rider and moves it to
// assigned in one step.
type Delivery struct {
	id           kernel.UUID
	orderID      kernel.UUID
	riderID      *kernel.UUID
	trackingCode string
	pickup       kernel.GeoPoint
	dropoff      kernel.GeoPoint
	contact      kernel.Contact
	status       string

	assignedAt  *time.Time
	eta         *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// etaWindow is the delivery promise given to the buyer at assignment.
const etaWindow = 2 * time.Hour

// NewDelivery creates a pending delivery with a fresh tracking code. The
// contact is who the rider calls at the drop-off point.
func NewDelivery(id, orderID kernel.UUID, pickup, dropoff kernel.GeoPoint, contact kernel.Contact) (*Delivery, error) {
	d := &Delivery{
		status: StatusPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setPickup(pickup),
		d.setDropoff(dropoff),
		d.setContact(contact),
	); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	d.trackingCode = NewTrackingCode(now)
	d.createdAt = now
	d.updatedAt = now

	return d, nil
}

// RestoreDelivery reconstructs a delivery from persistent storage.
func RestoreDelivery(
	id, orderID kernel.UUID,
	riderID *kernel.UUID,
	trackingCode string,
	pickup, dropoff kernel.GeoPoint,
	contact kernel.Contact,
	status string,
	assignedAt, eta, pickedUpAt, deliveredAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setPickup(pickup),
		d.setDropoff(dropoff),
		d.setContact(contact),
		d.setStatus(status),
		ValidateTrackingCode(trackingCode),
	); err != nil {
		return nil, err
	}

	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return nil, err
		}
		copied := *riderID
		d.riderID = &copied
	}

	d.trackingCode = trackingCode
	d.assignedAt = copyTime(assignedAt)
	d.eta = copyTime(eta)
	d.pickedUpAt = copyTime(pickedUpAt)
	d.deliveredAt = copyTime(deliveredAt)
	d.createdAt = createdAt
	d.updatedAt = updatedAt

	return d, nil
}

// Validate ensures the Delivery was created through a constructor.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// ID returns the delivery identifier.
func (d *Delivery) ID() kernel.UUID { return d.id }

// OrderID returns the shipped order identifier.
func (d *Delivery) OrderID() kernel.UUID { return d.orderID }

// RiderID returns the assigned rider identifier, or nil before assignment.
func (d *Delivery) RiderID() *kernel.UUID { return d.riderID }

// TrackingCode returns the buyer-facing tracking code.
func (d *Delivery) TrackingCode() string { return d.trackingCode }

// Pickup returns the vendor pickup point.
func (d *Delivery) Pickup() kernel.GeoPoint { return d.pickup }

// Dropoff returns the buyer dropoff point.
func (d *Delivery) Dropoff() kernel.GeoPoint { return d.dropoff }

// Contact returns the customer contact at the drop-off point.
func (d *Delivery) Contact() kernel.Contact { return d.contact }

// Status returns the current status string.
func (d *Delivery) Status() string { return d.status }

// AssignedAt returns when a rider was assigned, or nil.
func (d *Delivery) AssignedAt() *time.Time { return d.assignedAt }

// Eta returns the estimated delivery time set at assignment, or nil.
func (d *Delivery) Eta() *time.Time { return d.eta }

// PickedUpAt returns when the rider collected the package, or nil.
func (d *Delivery) PickedUpAt() *time.Time { return d.pickedUpAt }

// DeliveredAt returns when the package reached the buyer, or nil.
func (d *Delivery) DeliveredAt() *time.Time { return d.deliveredAt }

// CreatedAt returns the creation timestamp.
func (d *Delivery) CreatedAt() time.Time { return d.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (d *Delivery) UpdatedAt() time.Time { return d.updatedAt }

// IsTerminal reports whether the delivery reached a final state.
func (d *Delivery) IsTerminal() bool {
	return StateMachine.IsTerminal(d.status)
}

// AssignRider binds the rider and moves the delivery from pending to assigned.
func (d *Delivery) AssignRider(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if err := StateMachine.Check(d.status, StatusAssigned); err != nil {
		return err
	}
	if StateMachine.IsNoOp(d.status, StatusAssigned) {
		return nil
	}

	now := time.Now().UTC()
	eta := now.Add(etaWindow)
	d.riderID = &riderID
	d.status = StatusAssigned
	d.assignedAt = &now
	d.eta = &eta
	d.updatedAt = now
	return nil
}

// Transition moves the delivery to target if the state machine allows it,
// recording pickup and delivery timestamps as the shipment progresses.
// Repeating the current status is an idempotent no-op reporting changed=false.
func (d *Delivery) Transition(target string) (changed bool, err error) {
	if err = d.Validate(); err != nil {
		return false, err
	}

	if err = StateMachine.Check(d.status, target); err != nil {
		return false, err
	}

	if StateMachine.IsNoOp(d.status, target) {
		return false, nil
	}

	now := time.Now().UTC()
	switch target {
	case StatusPickedUp:
		d.pickedUpAt = &now
	case StatusDelivered:
		d.deliveredAt = &now
	}
	d.status = target
	d.updatedAt = now
	return true, nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.orderID = id
	return nil
}

func (d *Delivery) setPickup(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	d.pickup = point
	return nil
}

func (d *Delivery) setDropoff(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	d.dropoff = point
	return nil
}

func (d *Delivery) setContact(contact kernel.Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	d.contact = contact
	return nil
}

func (d *Delivery) setStatus(status string) error {
	if !StateMachine.IsState(status) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%q is not a delivery status", status))
	}
	d.status = status
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	copied := *t
	return &copied
}
