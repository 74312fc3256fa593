package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateRiderLocationCommandIsNotConstructed = errors.New(
	"UpdateRiderLocationCommand must be created via NewUpdateRiderLocationCommand constructor",
)

// UpdateRiderLocationCommand records a rider's current position. Riders
// report continuously; the latest position drives nearest-rider dispatch.
type UpdateRiderLocationCommand struct { //nolint:recvcheck //using for validation
	riderID  kernel.UUID
	position kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateRiderLocationCommand creates a command to move a rider.
func NewUpdateRiderLocationCommand(riderID kernel.UUID, position kernel.GeoPoint) (UpdateRiderLocationCommand, error) {
	if err := errors.Join(riderID.Validate(), position.Validate()); err != nil {
		return UpdateRiderLocationCommand{}, err
	}

	return UpdateRiderLocationCommand{
		riderID:  riderID,
		position: position,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateRiderLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRiderLocationCommandIsNotConstructed)
}

// RiderID returns the rider identifier.
func (c UpdateRiderLocationCommand) RiderID() kernel.UUID { return c.riderID }

// Position returns the reported position.
func (c UpdateRiderLocationCommand) Position() kernel.GeoPoint { return c.position }
