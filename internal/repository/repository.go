package repository

import (
	"context"

	"bomne-rental-backend/internal/domain"
)

// DeviceRepository stores cameras and lenses. Every call names the kind, which
// selects the inventory table.
type DeviceRepository interface {
	List(ctx context.Context, kind domain.DeviceKind) ([]domain.Device, error)
	Create(ctx context.Context, device *domain.Device) error
	Update(ctx context.Context, device *domain.Device) error
	Delete(ctx context.Context, kind domain.DeviceKind, id int32) error
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	Delete(ctx context.Context, id int32) error
	// List returns the page of rentals matching filter, newest first, and the
	// total number of matches. A zero PageSize returns every match.
	List(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, int32, error)
}

type LedgerRepository interface {
	GetSummary(ctx context.Context) (*domain.LedgerSummary, error)
	// ReconcileRemaining rewrites remaining_amount on rows where it drifted from
	// rental_fee - paid_amount and returns the ids it touched.
	ReconcileRemaining(ctx context.Context) ([]int32, error)
}
