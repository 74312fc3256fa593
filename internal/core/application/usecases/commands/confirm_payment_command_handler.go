package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/retry"
)

// ConfirmPaymentCommandHandler settles payments from provider callbacks.
//
// The handler is idempotent under provider retry: a payment already in a
// terminal state is acknowledged without changes. Successful settlement
// advances the order to paid through the order coordinator; that call is
// wrapped in a bounded retry and, should it still fail, the payment stays
// settled and the stale-payment reconciliation job closes the gap later.
type ConfirmPaymentCommandHandler struct {
	uowFactory   PaymentUoWFactory
	gateway      ports.PaymentGateway
	transitioner ports.OrderTransitioner
	retryPolicy  retry.Policy
	notifier     Notifier
	logger       *slog.Logger
}

// NewConfirmPaymentCommandHandler creates a handler for payment settlement.
func NewConfirmPaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	gateway ports.PaymentGateway,
	transitioner ports.OrderTransitioner,
	retryPolicy retry.Policy,
	notifier Notifier,
	logger *slog.Logger,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory:   uowFactory,
		gateway:      gateway,
		transitioner: transitioner,
		retryPolicy:  retryPolicy,
		notifier:     notifier,
		logger:       logger,
	}
}

// Handle processes the settlement command.
func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
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

	p, err := uow.PaymentRepository().GetByProviderRef(ctx, cmd.Reference())
	if err != nil {
		return err
	}

	if p.IsTerminal() {
		h.logger.InfoContext(ctx, "payment already settled, acknowledging callback",
			"reference", cmd.Reference(), "status", p.Status())
		return nil
	}

	verified, err := h.gateway.Verify(ctx, cmd.Reference())
	if err != nil {
		return err
	}

	settled, failed := false, false
	switch verified.Status {
	case ports.GatewayStatusSuccess:
		paidAt := p.CreatedAt()
		if verified.PaidAt != nil {
			paidAt = *verified.PaidAt
		}
		if err = p.MarkSuccess(verified.Channel, verified.GatewayResponse, paidAt); err != nil {
			return err
		}
		settled = true
	case ports.GatewayStatusFailed, ports.GatewayStatusAbandoned:
		if err = p.MarkFailed(verified.GatewayResponse); err != nil {
			return err
		}
		failed = true
	default:
		if err = p.MarkProcessing(); err != nil {
			return err
		}
	}

	if err = uow.PaymentRepository().Update(ctx, p); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if settled {
		err = h.retryPolicy.Do(ctx, func(ctx context.Context) error {
			return h.transitioner.TransitionOrder(ctx, p.OrderID(), order.StatusPaid, "payment confirmed")
		})
		if err != nil {
			h.logger.ErrorContext(ctx, "order transition failed after payment settlement, leaving to reconciliation",
				"order_id", p.OrderID().String(), "reference", cmd.Reference(), "error", err)
		}

		h.notifier.Notify(ctx, EventPaymentSuccess, p.PayerEmail(), map[string]string{
			"order_id":  p.OrderID().String(),
			"reference": p.ProviderRef(),
			"amount":    p.Amount().String(),
		})
	}

	if failed {
		h.notifier.Notify(ctx, EventPaymentFailed, p.PayerEmail(), map[string]string{
			"order_id":  p.OrderID().String(),
			"reference": p.ProviderRef(),
			"reason":    p.ErrorMessage(),
		})
	}

	return nil
}
