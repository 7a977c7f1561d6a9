package service

import (
	"context"

	"bomne-rental-backend/internal/domain"
	"bomne-rental-backend/internal/repository"
	"bomne-rental-backend/internal/utils"
)

type ledgerService struct {
	ledgerRepo  repository.LedgerRepository
	rentalRepo  repository.RentalRepository
	phoneRegion string
}

func NewLedgerService(ledgerRepo repository.LedgerRepository, rentalRepo repository.RentalRepository, phoneRegion string) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo, rentalRepo: rentalRepo, phoneRegion: phoneRegion}
}

func (s *ledgerService) Summary(ctx context.Context) (*domain.LedgerSummary, error) {
	return s.ledgerRepo.GetSummary(ctx)
}

func (s *ledgerService) SummaryFor(ctx context.Context, filter domain.RentalFilter) (*domain.LedgerSummary, error) {
	filter.Page, filter.PageSize = 0, 0
	rentals, _, err := s.rentalRepo.List(ctx, withPhoneSearch(filter, s.phoneRegion))
	if err != nil {
		return nil, err
	}
	summary := utils.Summarize(rentals)
	return &summary, nil
}

func (s *ledgerService) ReconcileRemaining(ctx context.Context) ([]int32, error) {
	return s.ledgerRepo.ReconcileRemaining(ctx)
}
