package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/retry"
)

// UpdateDeliveryStatusCommandHandler applies rider progress reports.
//
// Terminal transitions settle the rider: delivered releases the rider with a
// completed-delivery credit, failed releases without one. Order propagation
// follows the shipment: picked_up moves the order to shipped, delivered moves
// it to delivered. A failed delivery leaves the order where it is for support
// to resolve.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory   DeliveryUoWFactory
	transitioner ports.OrderTransitioner
	retryPolicy  retry.Policy
	notifier     Notifier
	logger       *slog.Logger
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for delivery progress.
func NewUpdateDeliveryStatusCommandHandler(
	uowFactory DeliveryUoWFactory,
	transitioner ports.OrderTransitioner,
	retryPolicy retry.Policy,
	notifier Notifier,
	logger *slog.Logger,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory:   uowFactory,
		transitioner: transitioner,
		retryPolicy:  retryPolicy,
		notifier:     notifier,
		logger:       logger,
	}
}

// Handle processes the progress command. Repeating the delivery's current
// status succeeds without changing anything.
func (h *UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	dlv, err := uow.DeliveryRepository().Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	changed, err := dlv.Transition(cmd.Target())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = uow.DeliveryRepository().Update(ctx, dlv); err != nil {
		return err
	}

	if dlv.IsTerminal() && dlv.RiderID() != nil {
		completed := dlv.Status() == delivery.StatusDelivered
		if err = uow.RiderRepository().Release(ctx, *dlv.RiderID(), completed); err != nil {
			return err
		}
	}

	payerEmail := ""
	if p, getErr := uow.PaymentRepository().GetLatestByOrder(ctx, dlv.OrderID()); getErr == nil && p != nil {
		payerEmail = p.PayerEmail()
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.propagateToOrder(ctx, dlv)

	if payerEmail != "" {
		event := EventDeliveryUpdated
		if dlv.Status() == delivery.StatusDelivered {
			event = EventDeliveryDelivered
		}
		h.notifier.Notify(ctx, event, payerEmail, map[string]string{
			"order_id":      dlv.OrderID().String(),
			"tracking_code": dlv.TrackingCode(),
			"status":        dlv.Status(),
		})
	}

	return nil
}

// propagateToOrder mirrors shipment progress onto the order through the
// order coordinator, with bounded retry.
func (h *UpdateDeliveryStatusCommandHandler) propagateToOrder(ctx context.Context, dlv *delivery.Delivery) {
	var target, notes string
	switch dlv.Status() {
	case delivery.StatusPickedUp:
		target, notes = order.StatusShipped, "package picked up"
	case delivery.StatusDelivered:
		target, notes = order.StatusDelivered, "package delivered"
	default:
		return
	}

	err := h.retryPolicy.Do(ctx, func(ctx context.Context) error {
		return h.transitioner.TransitionOrder(ctx, dlv.OrderID(), target, notes)
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "order transition failed after delivery progress",
			"order_id", dlv.OrderID().String(),
			"delivery_id", dlv.ID().String(),
			"target", target,
			"error", err)
	}
}
