package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreateOrderCommandHandler places a new order in pending status.
// It snapshots the part's unit price from the catalog and computes the
// immutable amount before persisting, so the stored amount can never be
// derived from client input.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.PartCatalog
	notifier   Notifier
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.PartCatalog,
	notifier Notifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		notifier:   notifier,
	}
}

// Handle processes the order creation command.
// The part must exist and have stock covering the requested quantity; the
// order records the catalog's current unit price as a snapshot.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	part, err := h.catalog.GetPart(ctx, cmd.PartID())
	if err != nil {
		return err
	}
	if !part.InStock {
		return errs.NewConflictError("part is out of stock")
	}
	if part.StockCount < cmd.Quantity() {
		return errs.NewConflictError("requested quantity exceeds available stock")
	}

	address, err := order.NewAddress(cmd.Line(), cmd.City(), cmd.Region())
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.BuyerID(),
		part.VendorID,
		cmd.PartID(),
		cmd.Quantity(),
		part.UnitPrice,
		address,
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

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, EventOrderCreated, cmd.BuyerEmail(), map[string]string{
		"order_id": aggregate.ID().String(),
		"part":     part.Name,
		"amount":   aggregate.Amount().String(),
	})

	return nil
}
