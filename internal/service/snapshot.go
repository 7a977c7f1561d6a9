package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"bomne-rental-backend/internal/domain"
	"bomne-rental-backend/internal/repository"
)

type snapshotService struct {
	deviceRepo repository.DeviceRepository
	rentalRepo repository.RentalRepository
}

func NewSnapshotService(deviceRepo repository.DeviceRepository, rentalRepo repository.RentalRepository) SnapshotService {
	return &snapshotService{deviceRepo: deviceRepo, rentalRepo: rentalRepo}
}

func (s *snapshotService) Grounding(ctx context.Context) (*domain.Grounding, error) {
	g := &domain.Grounding{}
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		devices, err := s.deviceRepo.List(ctx, domain.DeviceKindCamera)
		g.Cameras = devices
		return err
	})
	eg.Go(func() error {
		devices, err := s.deviceRepo.List(ctx, domain.DeviceKindLens)
		g.Lenses = devices
		return err
	})
	eg.Go(func() error {
		rentals, _, err := s.rentalRepo.List(ctx, domain.RentalFilter{Status: domain.RentalStatusActive})
		g.ActiveRentals = rentals
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return g, nil
}
