package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrRegisterRiderCommandIsNotConstructed = errors.New(
	"RegisterRiderCommand must be created via NewRegisterRiderCommand constructor",
)

// RegisterRiderCommand enrolls a courier into the dispatch pool.
type RegisterRiderCommand struct { //nolint:recvcheck //using for validation
	riderID       kernel.UUID
	contact       kernel.Contact
	vehicleType   string
	vehicleNumber string
	position      kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewRegisterRiderCommand creates a command to register a rider.
// Vehicle details are validated by the rider aggregate on Handle.
func NewRegisterRiderCommand(
	riderID kernel.UUID,
	contact kernel.Contact,
	vehicleType, vehicleNumber string,
	position kernel.GeoPoint,
) (RegisterRiderCommand, error) {
	cmd := RegisterRiderCommand{
		vehicleType:   vehicleType,
		vehicleNumber: vehicleNumber,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		riderID.Validate(),
		contact.Validate(),
		position.Validate(),
	); err != nil {
		return RegisterRiderCommand{}, err
	}
	cmd.riderID = riderID
	cmd.contact = contact
	cmd.position = position

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterRiderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterRiderCommandIsNotConstructed)
}

// RiderID returns the identifier for the rider to create.
func (c RegisterRiderCommand) RiderID() kernel.UUID { return c.riderID }

// Contact returns the rider's contact details.
func (c RegisterRiderCommand) Contact() kernel.Contact { return c.contact }

// VehicleType returns the declared vehicle type.
func (c RegisterRiderCommand) VehicleType() string { return c.vehicleType }

// VehicleNumber returns the declared plate or frame number.
func (c RegisterRiderCommand) VehicleNumber() string { return c.vehicleNumber }

// Position returns the rider's starting position.
func (c RegisterRiderCommand) Position() kernel.GeoPoint { return c.position }
