package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// TransitionOrderCommandHandler applies a status change to one order.
// Re-requesting the order's current status commits nothing and succeeds,
// which lets the payment and delivery coordinators retry their callbacks
// safely. Every applied change is announced to the buyer through the
// notifier.
type TransitionOrderCommandHandler struct {
	uowFactory PaymentUoWFactory
	notifier   Notifier
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(uowFactory PaymentUoWFactory, notifier Notifier) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{uowFactory: uowFactory, notifier: notifier}
}

// Handle processes the transition command.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	changed, err := aggregate.Transition(cmd.Target(), cmd.Notes())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	payerEmail := ""
	if p, getErr := uow.PaymentRepository().GetLatestByOrder(ctx, cmd.OrderID()); getErr == nil && p != nil {
		payerEmail = p.PayerEmail()
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if payerEmail != "" {
		event := EventOrderUpdated
		if cmd.Target() == order.StatusCancelled {
			event = EventOrderCancelled
		}
		h.notifier.Notify(ctx, event, payerEmail, map[string]string{
			"order_id": cmd.OrderID().String(),
			"status":   cmd.Target(),
		})
	}

	return nil
}
