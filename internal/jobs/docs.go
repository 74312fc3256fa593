// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic reconciliation the checkout flow relies on.
//
// # Available Jobs
//
// 1. PaymentReconciliationJob - Runs every minute to re-verify payments stuck
// in a non-terminal state, covering lost provider webhooks
// 2. OrderRepairJob - Runs every minute to advance orders whose payment
// settled but whose paid transition failed after settlement
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(uowFactory, confirmPaymentHandler, transitioner, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs run once a minute, offset by thirty seconds from each other so
// their sweeps do not contend for the same payment rows.
//
// # Error Handling
//
// - Reconciliation treats provider outages as transient and retries next sweep
// - Repair skips orders a concurrent webhook already advanced
// - Failed job starts will stop any already running jobs
package jobs
