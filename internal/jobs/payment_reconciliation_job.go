package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// staleAfter is how long a payment may sit in a non-terminal state before
// the reconciliation job re-verifies it with the provider.
const staleAfter = 15 * time.Minute

// PaymentReconciliationJob periodically re-verifies payments stuck in a
// non-terminal state. Webhooks can be lost; this job closes that gap by
// asking the provider for the authoritative outcome every minute.
type PaymentReconciliationJob struct {
	uowFactory commands.PaymentUoWFactory
	handler    commands.ConfirmPaymentCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewPaymentReconciliationJob creates a job that settles stale payments
// through ConfirmPaymentCommandHandler.
func NewPaymentReconciliationJob(
	uowFactory commands.PaymentUoWFactory,
	handler commands.ConfirmPaymentCommandHandler,
	logger *slog.Logger,
) *PaymentReconciliationJob {
	return &PaymentReconciliationJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "payment_reconciliation_job"),
	}
}

// Start begins the reconciliation job to run every minute.
func (j *PaymentReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		if err := j.reconcile(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Payment reconciliation sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment reconciliation job started (running every minute)")
	return nil
}

// Stop stops the reconciliation job.
func (j *PaymentReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment reconciliation job stopped")
}

func (j *PaymentReconciliationJob) reconcile(ctx context.Context) error {
	uow := j.uowFactory.Create()
	stale, err := uow.PaymentRepository().GetStaleNonTerminal(ctx, time.Now().UTC().Add(-staleAfter))
	if err != nil {
		return err
	}

	for _, p := range stale {
		// Payments that never reached the provider have no reference to
		// verify; they stay pending until the buyer retries initiation.
		if p.ProviderRef() == "" {
			continue
		}

		cmd, err := commands.NewConfirmPaymentCommand(p.ProviderRef())
		if err != nil {
			j.logger.ErrorContext(ctx, "Skipping unverifiable payment",
				"payment_id", p.ID().String(), "error", err)
			continue
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// Provider outages resolve themselves; the next sweep retries.
			if errors.Is(err, errs.ErrUpstreamTimeout) || errors.Is(err, errs.ErrUpstreamUnavailable) {
				j.logger.WarnContext(ctx, "Provider unavailable during reconciliation, will retry",
					"reference", p.ProviderRef(), "error", err)
				continue
			}
			j.logger.ErrorContext(ctx, "Payment reconciliation failed",
				"reference", p.ProviderRef(), "error", err)
		}
	}

	return nil
}
