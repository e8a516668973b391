package cron

import (
	"context"
	"log"
	"time"

	paymentRepo "medibook/database/repository/payment"
)

// StartReconciliationSweep periodically re-enqueues settlement for pending
// transactions whose scheduled task was lost (for example when the enqueue
// failed or the queue was flushed). Without it a transaction could stay
// pending forever.
func StartReconciliationSweep(repo paymentRepo.PaymentRepository, scheduler *AsynqScheduler, settleDelay, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

			// Only transactions past their settle-by time are stale.
			cutoff := time.Now().Add(-settleDelay - 30*time.Second)
			stale, err := repo.ListStalePending(ctx, cutoff)
			if err != nil {
				log.Printf("[ReconciliationSweep] failed to list stale payments: %v", err)
				cancel()
				continue
			}

			for _, p := range stale {
				if err := scheduler.ScheduleSettlement(ctx, p.TransactionID, 0); err != nil {
					log.Printf("[ReconciliationSweep] failed to re-enqueue %s: %v", p.TransactionID, err)
				}
			}
			if len(stale) > 0 {
				log.Printf("[ReconciliationSweep] re-enqueued %d stale pending payments", len(stale))
			}
			cancel()
		}
	}()
}
