package postgres

import (
	"database/sql"

	"bomne-rental-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	repository.DeviceRepository
	repository.RentalRepository
	repository.LedgerRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		DeviceRepository: NewDeviceRepository(db),
		RentalRepository: NewRentalRepository(db),
		LedgerRepository: NewLedgerRepository(db),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt32(p *int32) sql.NullInt32 {
	if p == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: *p, Valid: true}
}

func int32Ptr(n sql.NullInt32) *int32 {
	if !n.Valid {
		return nil
	}
	v := n.Int32
	return &v
}
