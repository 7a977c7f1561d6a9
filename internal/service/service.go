package service

import (
	"context"
	"time"

	"bomne-rental-backend/internal/domain"
	"bomne-rental-backend/internal/inventory"
)

// DefaultPageSize is the rentals table page size.
const DefaultPageSize = 10

type InventoryService interface {
	ListDevices(ctx context.Context, kind domain.DeviceKind) ([]domain.Device, error)
	AddDevice(ctx context.Context, device *domain.Device) error
	UpdateDevice(ctx context.Context, device *domain.Device) error
	DeleteDevice(ctx context.Context, kind domain.DeviceKind, id int32) error
	Index(ctx context.Context, kind domain.DeviceKind) (*inventory.Index, error)
}

type RentalService interface {
	CreateRental(ctx context.Context, rental *domain.Rental) error
	GetRental(ctx context.Context, id int32) (*domain.Rental, error)
	UpdateRental(ctx context.Context, id int32, patch domain.RentalPatch) (*domain.Rental, error)
	ReturnRental(ctx context.Context, id int32, condition domain.ReturnCondition) (*domain.Rental, error)
	DeleteRental(ctx context.Context, id int32) error
	ListRentals(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, int32, error)
}

type LedgerService interface {
	// Summary returns the dashboard totals over every rental.
	Summary(ctx context.Context) (*domain.LedgerSummary, error)
	// SummaryFor returns the totals over the rentals matching filter, ignoring pagination.
	SummaryFor(ctx context.Context, filter domain.RentalFilter) (*domain.LedgerSummary, error)
	ReconcileRemaining(ctx context.Context) ([]int32, error)
}

// BookingService turns booking intents from the assistant into stored rentals.
type BookingService interface {
	// ResolveBooking validates intent and resolves its device names. It never touches the store.
	ResolveBooking(intent domain.BookingIntent, cameras, lenses *inventory.Index, today time.Time) (*domain.Rental, error)
	// Book resolves intent against the devices in g and stores the result exactly once.
	Book(ctx context.Context, intent domain.BookingIntent, g *domain.Grounding) (*domain.Rental, error)
}

type SnapshotService interface {
	// Grounding loads cameras, lenses and active rentals for one extraction.
	Grounding(ctx context.Context) (*domain.Grounding, error)
}
