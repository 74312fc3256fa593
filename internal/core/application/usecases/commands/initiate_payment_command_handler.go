package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// InitiatePaymentCommandHandler opens a provider transaction for a pending
// order and records the authorization handle on a new payment aggregate.
type InitiatePaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	gateway    ports.PaymentGateway
}

// NewInitiatePaymentCommandHandler creates a handler for payment initiation.
func NewInitiatePaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	gateway ports.PaymentGateway,
) InitiatePaymentCommandHandler {
	return InitiatePaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// Handle processes the initiation command. Only pending orders are payable.
// When a non-terminal payment already exists for the order, its authorization
// is returned unchanged.
func (h *InitiatePaymentCommandHandler) Handle(ctx context.Context, cmd InitiatePaymentCommand) (InitiatePaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return InitiatePaymentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return InitiatePaymentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return InitiatePaymentResult{}, err
	}
	if aggregate.Status() != order.StatusPending {
		return InitiatePaymentResult{}, errs.NewConflictError("order is not payable")
	}

	existing, err := uow.PaymentRepository().GetActiveByOrder(ctx, cmd.OrderID())
	if err != nil {
		return InitiatePaymentResult{}, err
	}
	if existing != nil && existing.ProviderRef() != "" {
		return InitiatePaymentResult{
			PaymentID:        existing.ID(),
			Reference:        existing.ProviderRef(),
			AuthorizationURL: existing.AuthorizationURL(),
		}, nil
	}

	p, err := payment.NewPayment(cmd.PaymentID(), cmd.OrderID(), aggregate.Amount(), cmd.PayerEmail())
	if err != nil {
		return InitiatePaymentResult{}, err
	}

	auth, err := h.gateway.Initialize(ctx, cmd.PayerEmail(), p.Amount(), p.ID().String())
	if err != nil {
		return InitiatePaymentResult{}, err
	}

	if err = p.AttachAuthorization(auth.Reference, auth.AuthorizationURL); err != nil {
		return InitiatePaymentResult{}, err
	}
	if err = aggregate.AttachPaymentRef(auth.Reference); err != nil {
		return InitiatePaymentResult{}, err
	}

	if err = uow.PaymentRepository().Add(ctx, p); err != nil {
		return InitiatePaymentResult{}, err
	}
	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return InitiatePaymentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return InitiatePaymentResult{}, err
	}

	return InitiatePaymentResult{
		PaymentID:        p.ID(),
		Reference:        auth.Reference,
		AuthorizationURL: auth.AuthorizationURL,
		AccessCode:       auth.AccessCode,
	}, nil
}
