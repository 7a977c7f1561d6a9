package service

import (
	"context"
	"fmt"
	"strings"

	"bomne-rental-backend/internal/apperr"
	"bomne-rental-backend/internal/domain"
	"bomne-rental-backend/internal/inventory"
	"bomne-rental-backend/internal/logger"
	"bomne-rental-backend/internal/repository"
)

type inventoryService struct {
	deviceRepo repository.DeviceRepository
}

func NewInventoryService(deviceRepo repository.DeviceRepository) InventoryService {
	return &inventoryService{deviceRepo: deviceRepo}
}

func (s *inventoryService) ListDevices(ctx context.Context, kind domain.DeviceKind) ([]domain.Device, error) {
	if !kind.Valid() {
		return nil, apperr.Validation("kind", fmt.Sprintf("unknown device kind %q", kind))
	}
	return s.deviceRepo.List(ctx, kind)
}

func (s *inventoryService) AddDevice(ctx context.Context, device *domain.Device) error {
	logger.EnterMethod("inventoryService.AddDevice", "kind", device.Kind, "name", device.Name)
	if err := normalizeDevice(device); err != nil {
		logger.ExitMethodWithError("inventoryService.AddDevice", err)
		return err
	}
	if device.Status == "" {
		device.Status = domain.DeviceStatusAvailable
	}
	if err := s.deviceRepo.Create(ctx, device); err != nil {
		logger.ExitMethodWithError("inventoryService.AddDevice", err, "kind", device.Kind)
		return err
	}
	logger.ExitMethod("inventoryService.AddDevice", "kind", device.Kind, "id", device.ID)
	return nil
}

func (s *inventoryService) UpdateDevice(ctx context.Context, device *domain.Device) error {
	if err := normalizeDevice(device); err != nil {
		return err
	}
	return s.deviceRepo.Update(ctx, device)
}

func (s *inventoryService) DeleteDevice(ctx context.Context, kind domain.DeviceKind, id int32) error {
	if !kind.Valid() {
		return apperr.Validation("kind", fmt.Sprintf("unknown device kind %q", kind))
	}
	return s.deviceRepo.Delete(ctx, kind, id)
}

func (s *inventoryService) Index(ctx context.Context, kind domain.DeviceKind) (*inventory.Index, error) {
	devices, err := s.ListDevices(ctx, kind)
	if err != nil {
		return nil, err
	}
	return inventory.NewIndex(devices), nil
}

func normalizeDevice(d *domain.Device) error {
	if !d.Kind.Valid() {
		return apperr.Validation("kind", fmt.Sprintf("unknown device kind %q", d.Kind))
	}
	d.Name = strings.TrimSpace(d.Name)
	d.Brand = strings.TrimSpace(d.Brand)
	if d.Name == "" {
		return apperr.MissingRequiredField("name")
	}
	return nil
}
