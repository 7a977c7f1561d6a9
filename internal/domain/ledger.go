package domain

// LedgerSummary holds the dashboard totals over every rental in the store.
type LedgerSummary struct {
	TotalRevenue     int64 `json:"total_revenue"`
	TotalRentals     int   `json:"total_rentals"`
	ActiveRentals    int   `json:"active_rentals"`
	RemainingBalance int64 `json:"remaining_balance"`
}
