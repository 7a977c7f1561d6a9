package service_test

import (
	"context"

	"bomne-rental-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockDeviceRepo
type MockDeviceRepo struct {
	mock.Mock
}

func (m *MockDeviceRepo) List(ctx context.Context, kind domain.DeviceKind) ([]domain.Device, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Device), args.Error(1)
}
func (m *MockDeviceRepo) Create(ctx context.Context, device *domain.Device) error {
	args := m.Called(ctx, device)
	return args.Error(0)
}
func (m *MockDeviceRepo) Update(ctx context.Context, device *domain.Device) error {
	args := m.Called(ctx, device)
	return args.Error(0)
}
func (m *MockDeviceRepo) Delete(ctx context.Context, kind domain.DeviceKind, id int32) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRentalRepo) List(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) GetSummary(ctx context.Context) (*domain.LedgerSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}
func (m *MockLedgerRepo) ReconcileRemaining(ctx context.Context) ([]int32, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int32), args.Error(1)
}
