package service_test

import (
	"context"
	"testing"

	"bomne-rental-backend/internal/domain"
	"bomne-rental-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerService(t *testing.T) {
	ctx := context.Background()

	t.Run("Summary", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		svc := service.NewLedgerService(ledgerRepo, new(MockRentalRepo), "VN")

		ledgerRepo.On("GetSummary", ctx).Return(&domain.LedgerSummary{TotalRevenue: 100, TotalRentals: 2}, nil).Once()

		s, err := svc.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(100), s.TotalRevenue)
	})

	t.Run("SummaryFor ignores pagination", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		svc := service.NewLedgerService(new(MockLedgerRepo), rentalRepo, "VN")

		rentalRepo.On("List", ctx, domain.RentalFilter{RentalDate: "2024-05-01"}).Return([]domain.Rental{
			{PaidAmount: 200000, RemainingAmount: 100000},
			{PaidAmount: 50000, RemainingAmount: 0, ReturnCondition: domain.ReturnConditionReturnedNormal},
		}, int32(2), nil).Once()

		s, err := svc.SummaryFor(ctx, domain.RentalFilter{RentalDate: "2024-05-01", Page: 3, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, domain.LedgerSummary{TotalRevenue: 250000, TotalRentals: 2, ActiveRentals: 1, RemainingBalance: 100000}, *s)
		rentalRepo.AssertExpectations(t)
	})

	t.Run("SummaryFor matches local phone numbers", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		svc := service.NewLedgerService(new(MockLedgerRepo), rentalRepo, "VN")

		rentalRepo.On("List", ctx, domain.RentalFilter{Search: "0901234567", PhoneSearch: "+84901234567"}).
			Return([]domain.Rental{{PaidAmount: 300000}}, int32(1), nil).Once()

		s, err := svc.SummaryFor(ctx, domain.RentalFilter{Search: "0901234567"})
		require.NoError(t, err)
		assert.Equal(t, int64(300000), s.TotalRevenue)
		rentalRepo.AssertExpectations(t)
	})

	t.Run("ReconcileRemaining", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		svc := service.NewLedgerService(ledgerRepo, new(MockRentalRepo), "VN")

		ledgerRepo.On("ReconcileRemaining", ctx).Return([]int32{4}, nil).Once()

		ids, err := svc.ReconcileRemaining(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int32{4}, ids)
	})
}
