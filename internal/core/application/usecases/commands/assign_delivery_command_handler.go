package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/rider"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/retry"
)

// AssignDeliveryCommandHandler dispatches a rider for a paid order.
//
// Candidates come back from storage nearest-first, but a candidate list is
// only a hint: between listing and claiming, another dispatcher may take the
// same rider. Each candidate is therefore claimed with a conditional
// available-to-busy flip, and losing that race just moves on to the next
// candidate. When every candidate in every attempt is lost or gone, the
// command fails with errs.ErrNoCapacity and the order stays paid.
type AssignDeliveryCommandHandler struct {
	uowFactory   DeliveryUoWFactory
	catalog      ports.PartCatalog
	transitioner ports.OrderTransitioner
	dispatcher   services.RiderDispatcher
	retryPolicy  retry.Policy
	notifier     Notifier
	logger       *slog.Logger
}

// NewAssignDeliveryCommandHandler creates a handler for delivery assignment.
func NewAssignDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	catalog ports.PartCatalog,
	transitioner ports.OrderTransitioner,
	retryPolicy retry.Policy,
	notifier Notifier,
	logger *slog.Logger,
) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory:   uowFactory,
		catalog:      catalog,
		transitioner: transitioner,
		dispatcher:   services.NewRiderDispatcher(),
		retryPolicy:  retryPolicy,
		notifier:     notifier,
		logger:       logger,
	}
}

// candidatesPerAttempt bounds how many nearest riders one claim attempt
// walks before backing off and re-listing.
const candidatesPerAttempt = 5

// Handle processes the assignment command. Re-requesting assignment for an
// order that already has a delivery returns the existing delivery unchanged.
func (h *AssignDeliveryCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryCommand) (AssignDeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignDeliveryResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignDeliveryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return AssignDeliveryResult{}, err
	}

	if aggregate.DeliveryID() != nil {
		existing, getErr := uow.DeliveryRepository().Get(ctx, *aggregate.DeliveryID())
		if getErr != nil {
			return AssignDeliveryResult{}, getErr
		}
		if existing.RiderID() == nil {
			return AssignDeliveryResult{}, errs.NewConflictError("delivery exists without a rider")
		}
		return AssignDeliveryResult{
			DeliveryID:   existing.ID(),
			RiderID:      *existing.RiderID(),
			TrackingCode: existing.TrackingCode(),
		}, nil
	}

	if aggregate.Status() != order.StatusPaid {
		return AssignDeliveryResult{}, errs.NewConflictError("order is not paid")
	}

	part, err := h.catalog.GetPart(ctx, aggregate.PartID())
	if err != nil {
		return AssignDeliveryResult{}, err
	}

	dlv, err := delivery.NewDelivery(cmd.DeliveryID(), cmd.OrderID(), part.PickupLocation, cmd.Dropoff(), cmd.Contact())
	if err != nil {
		return AssignDeliveryResult{}, err
	}

	claimed, err := h.claimNearestRider(ctx, uow.RiderRepository(), dlv)
	if err != nil {
		return AssignDeliveryResult{}, err
	}

	if err = dlv.AssignRider(claimed); err != nil {
		return AssignDeliveryResult{}, err
	}
	if err = uow.DeliveryRepository().Add(ctx, dlv); err != nil {
		return AssignDeliveryResult{}, err
	}

	if err = aggregate.AttachDelivery(dlv.ID()); err != nil {
		return AssignDeliveryResult{}, err
	}
	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return AssignDeliveryResult{}, err
	}

	payerEmail := ""
	if p, getErr := uow.PaymentRepository().GetLatestByOrder(ctx, cmd.OrderID()); getErr == nil && p != nil {
		payerEmail = p.PayerEmail()
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignDeliveryResult{}, err
	}

	err = h.retryPolicy.Do(ctx, func(ctx context.Context) error {
		return h.transitioner.TransitionOrder(ctx, cmd.OrderID(), order.StatusProcessing, "rider assigned")
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "order transition failed after rider assignment",
			"order_id", cmd.OrderID().String(), "delivery_id", dlv.ID().String(), "error", err)
	}

	h.notifier.Notify(ctx, EventDeliveryAssigned, payerEmail, map[string]string{
		"order_id":      cmd.OrderID().String(),
		"tracking_code": dlv.TrackingCode(),
	})

	return AssignDeliveryResult{
		DeliveryID:   dlv.ID(),
		RiderID:      claimed,
		TrackingCode: dlv.TrackingCode(),
	}, nil
}

// claimNearestRider lets the dispatcher pick the best candidate and claims it
// with the storage-level conditional flip, re-listing with backoff between
// attempts. A lost claim drops the candidate and asks the dispatcher again.
func (h *AssignDeliveryCommandHandler) claimNearestRider(
	ctx context.Context,
	riders ports.RiderRepository,
	dlv *delivery.Delivery,
) (claimed kernel.UUID, err error) {
	err = h.retryPolicy.Do(ctx, func(ctx context.Context) error {
		candidates, listErr := riders.GetNearestAvailable(ctx, dlv.Pickup(), candidatesPerAttempt)
		if listErr != nil {
			return listErr
		}

		for len(candidates) > 0 {
			best, selErr := h.dispatcher.SelectRider(dlv, candidates)
			if selErr != nil {
				return selErr
			}

			ok, claimErr := riders.TryClaim(ctx, best.ID())
			if claimErr != nil {
				return claimErr
			}
			if ok {
				claimed = best.ID()
				return nil
			}

			h.logger.DebugContext(ctx, "lost rider claim race, trying next candidate",
				"rider_id", best.ID().String())
			candidates = withoutRider(candidates, best.ID())
		}

		return errs.NewNoCapacityError("no available rider could be claimed")
	})
	return claimed, err
}

func withoutRider(candidates []*rider.Rider, id kernel.UUID) []*rider.Rider {
	remaining := make([]*rider.Rider, 0, len(candidates))
	for _, candidate := range candidates {
		if !candidate.ID().IsEqual(id) {
			remaining = append(remaining, candidate)
		}
	}
	return remaining
}
