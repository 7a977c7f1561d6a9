package jobs

import (
	"context"

	"bomne-rental-backend/internal/domain"
	"bomne-rental-backend/internal/logger"
	"bomne-rental-backend/internal/utils"
)

// LogOverdueRentals reports active rentals whose return date has passed.
// Nothing is changed: the shop decides what an overdue rental means.
func (jr *JobRunner) LogOverdueRentals() {
	jr.runWithRecovery("LogOverdueRentals", func(ctx context.Context) {
		rentals, _, err := jr.services.Rental.ListRentals(ctx, domain.RentalFilter{Status: domain.RentalStatusActive})
		if err != nil {
			logger.Error("Failed to list active rentals", "error", err)
			return
		}

		today := utils.DateOf(jr.now())
		overdue := overdueRentals(rentals, today)

		logger.Info("Overdue rentals", "count", len(overdue))
		for _, rt := range overdue {
			logger.Warn("Rental overdue",
				"rental_id", rt.ID,
				"customer", rt.CustomerName,
				"phone", rt.Phone,
				"return_date", rt.ReturnDate,
				"remaining", utils.FormatVND(rt.RemainingAmount))
		}
	})
}

func overdueRentals(rentals []domain.Rental, today utils.Date) []domain.Rental {
	var out []domain.Rental
	for _, rt := range rentals {
		if !utils.IsActive(rt) || rt.ReturnDate == "" {
			continue
		}
		due, err := utils.ParseDate(rt.ReturnDate)
		if err != nil {
			continue
		}
		if days, err := utils.RentalDays(due, today); err == nil && days > 1 {
			out = append(out, rt)
		}
	}
	return out
}
