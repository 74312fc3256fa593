package rider

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Status values for rider availability, stored as plain strings.
const (
	StatusAvailable = "available"
	StatusBusy      = "busy"
	StatusOffline   = "offline"
)

// Vehicle types a rider can register with.
const (
	VehicleMotorbike = "motorbike"
	VehicleBicycle   = "bicycle"
	VehicleCar       = "car"
)

// ErrRiderIsNotConstructed is returned when a Rider was not created via
// NewRider or RestoreRider.
var ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider or RestoreRider constructor")

// Rider is a courier registered with the dispatch service.
type Rider struct {
	id            kernel.UUID
	contact       kernel.Contact
	vehicleType   string
	vehicleNumber string
	status        string
	position      kernel.GeoPoint

	deliveriesCompleted int
	isActive            bool

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewRider registers a rider, available at the given position.
func NewRider(id kernel.UUID, contact kernel.Contact, vehicleType, vehicleNumber string, position kernel.GeoPoint) (*Rider, error) {
	r := &Rider{
		status:   StatusAvailable,
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setContact(contact),
		r.setVehicleType(vehicleType),
		r.setVehicleNumber(vehicleNumber),
		r.setPosition(position),
	); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r.createdAt = now
	r.updatedAt = now

	return r, nil
}

// RestoreRider reconstructs a rider from persistent storage.
func RestoreRider(
	id kernel.UUID,
	contact kernel.Contact,
	vehicleType, vehicleNumber string,
	status string,
	position kernel.GeoPoint,
	deliveriesCompleted int,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*Rider, error) {
	r := &Rider{
		isActive: isActive,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setContact(contact),
		r.setVehicleType(vehicleType),
		r.setVehicleNumber(vehicleNumber),
		r.setStatus(status),
		r.setPosition(position),
	); err != nil {
		return nil, err
	}

	if deliveriesCompleted < 0 {
		return nil, errs.NewValueIsInvalidError("deliveries completed")
	}
	r.deliveriesCompleted = deliveriesCompleted
	r.createdAt = createdAt
	r.updatedAt = updatedAt

	return r, nil
}

// Validate ensures the Rider was created through a constructor.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

// ID returns the rider identifier.
func (r *Rider) ID() kernel.UUID { return r.id }

// Contact returns the rider's contact details.
func (r *Rider) Contact() kernel.Contact { return r.contact }

// VehicleType returns the registered vehicle type.
func (r *Rider) VehicleType() string { return r.vehicleType }

// VehicleNumber returns the registered plate or frame number.
func (r *Rider) VehicleNumber() string { return r.vehicleNumber }

// Status returns the current availability string.
func (r *Rider) Status() string { return r.status }

// Position returns the last reported position.
func (r *Rider) Position() kernel.GeoPoint { return r.position }

// DeliveriesCompleted returns the lifetime completed-delivery count.
func (r *Rider) DeliveriesCompleted() int { return r.deliveriesCompleted }

// IsActive reports whether the rider account is enabled.
func (r *Rider) IsActive() bool { return r.isActive }

// CreatedAt returns the registration timestamp.
func (r *Rider) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (r *Rider) UpdatedAt() time.Time { return r.updatedAt }

// IsAvailable reports whether the rider can take a delivery right now.
func (r *Rider) IsAvailable() bool {
	return r.isActive && r.status == StatusAvailable
}

// DistanceTo returns the distance in kilometers from the rider's last
// reported position to the target point.
func (r *Rider) DistanceTo(target kernel.GeoPoint) (float64, error) {
	return r.position.DistanceKm(target)
}

// MarkBusy flips an available rider to busy. The storage layer performs the
// same flip conditionally so concurrent dispatchers cannot both claim one
// rider; this method keeps the in-memory aggregate consistent with it.
func (r *Rider) MarkBusy() error {
	if !r.IsAvailable() {
		return errs.NewInvalidTransitionError("rider", r.status, StatusBusy)
	}
	r.status = StatusBusy
	r.updatedAt = time.Now().UTC()
	return nil
}

// Release returns a busy rider to the available pool.
func (r *Rider) Release() error {
	if r.status != StatusBusy {
		return errs.NewInvalidTransitionError("rider", r.status, StatusAvailable)
	}
	r.status = StatusAvailable
	r.updatedAt = time.Now().UTC()
	return nil
}

// CompleteDelivery releases the rider and increments the completed counter.
func (r *Rider) CompleteDelivery() error {
	if err := r.Release(); err != nil {
		return err
	}
	r.deliveriesCompleted++
	return nil
}

// GoOffline removes the rider from the available pool. Busy riders finish
// their current delivery first.
func (r *Rider) GoOffline() error {
	if r.status == StatusBusy {
		return errs.NewInvalidTransitionError("rider", r.status, StatusOffline)
	}
	r.status = StatusOffline
	r.updatedAt = time.Now().UTC()
	return nil
}

// GoOnline returns an offline rider to the available pool.
func (r *Rider) GoOnline() error {
	if !r.isActive {
		return errs.NewValidationError("rider account is deactivated")
	}
	if r.status == StatusBusy {
		return errs.NewInvalidTransitionError("rider", r.status, StatusAvailable)
	}
	r.status = StatusAvailable
	r.updatedAt = time.Now().UTC()
	return nil
}

// MoveTo updates the rider's last reported position.
func (r *Rider) MoveTo(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}
	r.position = position
	r.updatedAt = time.Now().UTC()
	return nil
}

// Deactivate disables the rider account and takes it offline.
func (r *Rider) Deactivate() error {
	if r.status == StatusBusy {
		return errs.NewValidationError("rider with an active delivery cannot be deactivated")
	}
	r.isActive = false
	r.status = StatusOffline
	r.updatedAt = time.Now().UTC()
	return nil
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setContact(contact kernel.Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	r.contact = contact
	return nil
}

func (r *Rider) setVehicleType(vehicleType string) error {
	switch vehicleType {
	case VehicleMotorbike, VehicleBicycle, VehicleCar:
		r.vehicleType = vehicleType
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicle type", fmt.Errorf("%q is not a vehicle type", vehicleType))
	}
}

func (r *Rider) setVehicleNumber(vehicleNumber string) error {
	if vehicleNumber == "" {
		return errs.NewValueIsRequiredError("vehicle number")
	}
	r.vehicleNumber = vehicleNumber
	return nil
}

func (r *Rider) setStatus(status string) error {
	switch status {
	case StatusAvailable, StatusBusy, StatusOffline:
		r.status = status
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%q is not a rider status", status))
	}
}

func (r *Rider) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}
	r.position = position
	return nil
}
