package jobs

import (
	"context"
	"errors"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// OrderRepairJob re-drives the paid transition for orders whose payment
// settled but whose transition failed after settlement. Settlement commits
// the payment first and advances the order second, so a crash or transient
// failure between the two leaves a settled payment on a pending order.
type OrderRepairJob struct {
	uowFactory   commands.PaymentUoWFactory
	transitioner ports.OrderTransitioner
	cron         *cron.Cron
	logger       *slog.Logger
}

// NewOrderRepairJob creates a job that repairs settled-but-pending orders.
func NewOrderRepairJob(
	uowFactory commands.PaymentUoWFactory,
	transitioner ports.OrderTransitioner,
	logger *slog.Logger,
) *OrderRepairJob {
	return &OrderRepairJob{
		uowFactory:   uowFactory,
		transitioner: transitioner,
		cron:         cron.New(cron.WithSeconds()),
		logger:       logger.With("component", "order_repair_job"),
	}
}

// Start begins the repair job to run every minute.
func (j *OrderRepairJob) Start() error {
	_, err := j.cron.AddFunc("30 * * * * *", func() {
		ctx := context.Background()
		if err := j.repair(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Order repair sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order repair job started (running every minute)")
	return nil
}

// Stop stops the repair job.
func (j *OrderRepairJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order repair job stopped")
}

func (j *OrderRepairJob) repair(ctx context.Context) error {
	uow := j.uowFactory.Create()
	pending, err := uow.OrderRepository().GetAllInStatus(ctx, order.StatusPending)
	if err != nil {
		return err
	}

	for _, o := range pending {
		latest, err := uow.PaymentRepository().GetLatestByOrder(ctx, o.ID())
		if err != nil {
			// Orders awaiting their first payment are not broken.
			if errors.Is(err, errs.ErrObjectNotFound) {
				continue
			}
			j.logger.ErrorContext(ctx, "Order repair payment lookup failed",
				"order_id", o.ID().String(), "error", err)
			continue
		}

		if latest.Status() != payment.StatusSuccess {
			continue
		}

		err = j.transitioner.TransitionOrder(ctx, o.ID(), order.StatusPaid, "reconciled after settlement")
		if err != nil {
			// A concurrent webhook may have advanced the order already.
			if errors.Is(err, errs.ErrInvalidTransition) {
				continue
			}
			j.logger.ErrorContext(ctx, "Order repair transition failed",
				"order_id", o.ID().String(), "error", err)
			continue
		}

		j.logger.InfoContext(ctx, "Repaired order left behind by failed transition",
			"order_id", o.ID().String(), "reference", latest.ProviderRef())
	}

	return nil
}
