package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"bomne-rental-backend/internal/apperr"
	"bomne-rental-backend/internal/domain"
	"bomne-rental-backend/internal/repository"
)

const rentalColumns = `r.id, r.customer_name, COALESCE(r.phone, ''),
	COALESCE(to_char(r.rental_date, 'YYYY-MM-DD'), ''), COALESCE(r.pickup_time, ''),
	COALESCE(to_char(r.return_date, 'YYYY-MM-DD'), ''), COALESCE(r.return_time, ''),
	COALESCE(r.duration, ''), r.rental_fee, r.deposit, r.paid_amount, r.remaining_amount,
	COALESCE(r.payment_method, ''), COALESCE(r.return_condition, ''), COALESCE(r.notes, ''),
	r.camera_id, r.lens_id, COALESCE(c.name, ''), COALESCE(l.name, '')`

const rentalFrom = ` FROM rentals r
	LEFT JOIN cameras c ON c.id = r.camera_id
	LEFT JOIN lenses l ON l.id = r.lens_id`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRental(row rowScanner) (domain.Rental, error) {
	var rt domain.Rental
	var cameraID, lensID sql.NullInt32
	var payment, condition string
	err := row.Scan(&rt.ID, &rt.CustomerName, &rt.Phone, &rt.RentalDate, &rt.PickupTime, &rt.ReturnDate, &rt.ReturnTime,
		&rt.Duration, &rt.RentalFee, &rt.Deposit, &rt.PaidAmount, &rt.RemainingAmount,
		&payment, &condition, &rt.Notes, &cameraID, &lensID, &rt.CameraName, &rt.LensName)
	if err != nil {
		return rt, err
	}
	rt.PaymentMethod = domain.PaymentMethod(payment)
	rt.ReturnCondition = domain.ReturnCondition(condition)
	rt.CameraID = int32Ptr(cameraID)
	rt.LensID = int32Ptr(lensID)
	return rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (customer_name, phone, rental_date, pickup_time, return_date, return_time, duration,
	          rental_fee, deposit, paid_amount, remaining_amount, payment_method, return_condition, notes, camera_id, lens_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, rt.CustomerName, rt.Phone, nullString(rt.RentalDate), rt.PickupTime,
		nullString(rt.ReturnDate), rt.ReturnTime, rt.Duration, rt.RentalFee, rt.Deposit, rt.PaidAmount, rt.RemainingAmount,
		string(rt.PaymentMethod), string(rt.ReturnCondition), rt.Notes, nullInt32(rt.CameraID), nullInt32(rt.LensID)).Scan(&rt.ID)
	if err != nil {
		return apperr.Persistence("create rental", err)
	}
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + rentalFrom + ` WHERE r.id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("rental %d not found", id))
	}
	return &rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET customer_name=$1, phone=$2, rental_date=$3, pickup_time=$4, return_date=$5, return_time=$6,
	          duration=$7, rental_fee=$8, deposit=$9, paid_amount=$10, remaining_amount=$11, payment_method=$12,
	          return_condition=$13, notes=$14, camera_id=$15, lens_id=$16 WHERE id=$17`
	res, err := r.db.ExecContext(ctx, query, rt.CustomerName, rt.Phone, nullString(rt.RentalDate), rt.PickupTime,
		nullString(rt.ReturnDate), rt.ReturnTime, rt.Duration, rt.RentalFee, rt.Deposit, rt.PaidAmount, rt.RemainingAmount,
		string(rt.PaymentMethod), string(rt.ReturnCondition), rt.Notes, nullInt32(rt.CameraID), nullInt32(rt.LensID), rt.ID)
	if err != nil {
		return apperr.Persistence("update rental", err)
	}
	return requireOneRow(res, fmt.Sprintf("rental %d not found", rt.ID))
}

func (r *rentalRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return apperr.Persistence("delete rental", err)
	}
	return requireOneRow(res, fmt.Sprintf("rental %d not found", id))
}

func (r *rentalRepository) List(ctx context.Context, f domain.RentalFilter) ([]domain.Rental, int32, error) {
	var where []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg(containsPattern(s))
		phone := "r.phone ILIKE " + p
		if f.PhoneSearch != "" && f.PhoneSearch != s {
			phone = fmt.Sprintf("(r.phone ILIKE %s OR r.phone ILIKE %s)", p, arg(containsPattern(f.PhoneSearch)))
		}
		where = append(where, fmt.Sprintf("(r.customer_name ILIKE %s OR %s OR c.name ILIKE %s)", p, phone, p))
	}
	if f.RentalDate != "" {
		where = append(where, "r.rental_date = "+arg(f.RentalDate))
	}
	switch f.Status {
	case domain.RentalStatusActive:
		where = append(where, fmt.Sprintf("COALESCE(r.return_condition, '') IN ('', %s)", arg(string(domain.ReturnConditionUnreturned))))
	case domain.RentalStatusReturned:
		where = append(where, fmt.Sprintf("COALESCE(r.return_condition, '') NOT IN ('', %s)", arg(string(domain.ReturnConditionUnreturned))))
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*)`+rentalFrom+cond, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + rentalColumns + rentalFrom + cond + ` ORDER BY r.id DESC`
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %s OFFSET %s", arg(f.PageSize), arg((page-1)*f.PageSize))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, count, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches s literally anywhere in the column. Backslash is
// the default LIKE escape character in Postgres.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
