package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"bomne-rental-backend/internal/domain"
)

var vndPrinter = message.NewPrinter(language.Vietnamese)

// DeriveFinancials returns the remaining balance for a fee and a paid amount.
// Overpayment yields a negative balance and is passed through unclamped.
func DeriveFinancials(fee, paid int64) int64 {
	return fee - paid
}

// ApplyRentalFee sets the fee and re-derives the remaining balance in one step.
func ApplyRentalFee(r *domain.Rental, fee int64) {
	r.RentalFee = fee
	r.RemainingAmount = DeriveFinancials(r.RentalFee, r.PaidAmount)
}

// ApplyPaidAmount sets the paid amount and re-derives the remaining balance in one step.
func ApplyPaidAmount(r *domain.Rental, paid int64) {
	r.PaidAmount = paid
	r.RemainingAmount = DeriveFinancials(r.RentalFee, r.PaidAmount)
}

// IsActive reports whether the equipment of r is still out.
func IsActive(r domain.Rental) bool {
	return r.ReturnCondition == "" || r.ReturnCondition == domain.ReturnConditionUnreturned
}

// IsSettled reports whether nothing is owed on r, in either direction.
func IsSettled(r domain.Rental) bool {
	return r.RemainingAmount == 0
}

// Summarize computes the dashboard totals over rentals.
func Summarize(rentals []domain.Rental) domain.LedgerSummary {
	var s domain.LedgerSummary
	for _, r := range rentals {
		s.TotalRentals++
		s.TotalRevenue += r.PaidAmount
		s.RemainingBalance += r.RemainingAmount
		if IsActive(r) {
			s.ActiveRentals++
		}
	}
	return s
}

// FormatVND renders an amount with Vietnamese digit grouping, e.g. "1.500.000 ₫".
func FormatVND(amount int64) string {
	return vndPrinter.Sprintf("%d ₫", amount)
}
