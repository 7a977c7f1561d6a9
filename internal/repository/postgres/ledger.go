package postgres

import (
	"context"
	"database/sql"

	"bomne-rental-backend/internal/domain"
	"bomne-rental-backend/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) GetSummary(ctx context.Context) (*domain.LedgerSummary, error) {
	summary := &domain.LedgerSummary{}
	query := `SELECT COALESCE(SUM(paid_amount), 0), count(*),
	          count(*) FILTER (WHERE COALESCE(return_condition, '') IN ('', $1)),
	          COALESCE(SUM(remaining_amount), 0)
	          FROM rentals`
	err := r.db.QueryRowContext(ctx, query, string(domain.ReturnConditionUnreturned)).
		Scan(&summary.TotalRevenue, &summary.TotalRentals, &summary.ActiveRentals, &summary.RemainingBalance)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *ledgerRepository) ReconcileRemaining(ctx context.Context) ([]int32, error) {
	query := `UPDATE rentals SET remaining_amount = rental_fee - paid_amount
	          WHERE remaining_amount IS DISTINCT FROM rental_fee - paid_amount RETURNING id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
