package jobs

import (
	"fmt"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	paymentReconciliationJob *PaymentReconciliationJob
	orderRepairJob           *OrderRepairJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the settlement handler and transitioner as dependencies to wire up
// the job execution.
func NewJobManager(
	uowFactory commands.PaymentUoWFactory,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	transitioner ports.OrderTransitioner,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		paymentReconciliationJob: NewPaymentReconciliationJob(uowFactory, confirmPaymentHandler, logger),
		orderRepairJob:           NewOrderRepairJob(uowFactory, transitioner, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.paymentReconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start payment reconciliation job: %w", err)
	}

	if err := jm.orderRepairJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.paymentReconciliationJob.Stop()
		return fmt.Errorf("failed to start order repair job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderRepairJob.Stop()
	jm.paymentReconciliationJob.Stop()
}
