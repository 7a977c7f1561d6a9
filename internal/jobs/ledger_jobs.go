package jobs

import (
	"context"

	"bomne-rental-backend/internal/logger"
	"bomne-rental-backend/internal/utils"
)

// ReconcileRemainingAmounts re-derives remaining_amount on rows edited
// directly in the database so that it equals rental_fee - paid_amount again.
func (jr *JobRunner) ReconcileRemainingAmounts() {
	jr.runWithRecovery("ReconcileRemainingAmounts", func(ctx context.Context) {
		ids, err := jr.services.Ledger.ReconcileRemaining(ctx)
		logger.DatabaseResult("ReconcileRemaining", int64(len(ids)), err)
		if err != nil {
			return
		}

		logger.Info("Reconciled remaining amounts", "count", len(ids))
		for _, id := range ids {
			logger.Debug("Remaining amount re-derived", "rental_id", id)
		}
	})
}

// LogLedgerSummary logs the dashboard totals.
func (jr *JobRunner) LogLedgerSummary() {
	jr.runWithRecovery("LogLedgerSummary", func(ctx context.Context) {
		s, err := jr.services.Ledger.Summary(ctx)
		if err != nil {
			logger.Error("Failed to load ledger summary", "error", err)
			return
		}

		logger.Info("Ledger summary",
			"total_rentals", s.TotalRentals,
			"active_rentals", s.ActiveRentals,
			"revenue", utils.FormatVND(s.TotalRevenue),
			"remaining", utils.FormatVND(s.RemainingBalance))
	})
}
