package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bomne-rental-backend/internal/apperr"
	"bomne-rental-backend/internal/domain"
	"bomne-rental-backend/internal/repository"
)

var deviceTables = map[domain.DeviceKind]string{
	domain.DeviceKindCamera: "cameras",
	domain.DeviceKindLens:   "lenses",
}

type deviceRepository struct {
	db *sql.DB
}

func NewDeviceRepository(db *sql.DB) repository.DeviceRepository {
	return &deviceRepository{db: db}
}

func tableFor(kind domain.DeviceKind) (string, error) {
	table, ok := deviceTables[kind]
	if !ok {
		return "", apperr.Validation("kind", fmt.Sprintf("unknown device kind %q", kind))
	}
	return table, nil
}

func (r *deviceRepository) List(ctx context.Context, kind domain.DeviceKind) ([]domain.Device, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT id, name, COALESCE(brand, ''), COALESCE(status, '') FROM %s ORDER BY id`, table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []domain.Device
	for rows.Next() {
		d := domain.Device{Kind: kind}
		if err := rows.Scan(&d.ID, &d.Name, &d.Brand, &d.Status); err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

func (r *deviceRepository) Create(ctx context.Context, d *domain.Device) error {
	table, err := tableFor(d.Kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %s (name, brand, status) VALUES ($1, $2, $3) RETURNING id`, table)
	if err := r.db.QueryRowContext(ctx, query, d.Name, d.Brand, d.Status).Scan(&d.ID); err != nil {
		return apperr.Persistence("create "+string(d.Kind), err)
	}
	return nil
}

func (r *deviceRepository) Update(ctx context.Context, d *domain.Device) error {
	table, err := tableFor(d.Kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE %s SET name=$1, brand=$2, status=$3 WHERE id=$4`, table)
	res, err := r.db.ExecContext(ctx, query, d.Name, d.Brand, d.Status, d.ID)
	if err != nil {
		return apperr.Persistence("update "+string(d.Kind), err)
	}
	return requireOneRow(res, fmt.Sprintf("%s %d not found", d.Kind, d.ID))
}

func (r *deviceRepository) Delete(ctx context.Context, kind domain.DeviceKind, id int32) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return apperr.Persistence("delete "+string(kind), err)
	}
	return requireOneRow(res, fmt.Sprintf("%s %d not found", kind, id))
}

func requireOneRow(res sql.Result, msg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound(msg)
	}
	return nil
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(msg)
	}
	return err
}
