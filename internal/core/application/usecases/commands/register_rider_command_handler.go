package commands

import (
	"context"

	"marketplace/internal/core/domain/model/rider"
)

// RegisterRiderCommandHandler enrolls new riders, available immediately.
type RegisterRiderCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewRegisterRiderCommandHandler creates a handler for rider registration.
func NewRegisterRiderCommandHandler(uowFactory RiderUoWFactory) RegisterRiderCommandHandler {
	return RegisterRiderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the registration command.
func (h *RegisterRiderCommandHandler) Handle(ctx context.Context, cmd RegisterRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := rider.NewRider(
		cmd.RiderID(),
		cmd.Contact(),
		cmd.VehicleType(),
		cmd.VehicleNumber(),
		cmd.Position(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RiderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
