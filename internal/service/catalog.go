package service

import (
	"context"

	"github.com/atinyakov/FirmAdmin/internal/models"
)

// DeviceHardRepository persists hardware types.
type DeviceHardRepository interface {
	ListDeviceHard(ctx context.Context) ([]models.DeviceHard, error)
	AddDeviceHard(ctx context.Context, in models.DeviceHardInput) error
	// UpdateDeviceHard returns ErrNotFound when no row has hard.ID.
	UpdateDeviceHard(ctx context.Context, hard models.DeviceHard) error
}

// DeviceSoftRepository persists software types.
type DeviceSoftRepository interface {
	ListDeviceSoft(ctx context.Context) ([]models.DeviceSoft, error)
	AddDeviceSoft(ctx context.Context, in models.DeviceSoftInput) error
	// UpdateDeviceSoft returns ErrNotFound when no row has soft.ID.
	UpdateDeviceSoft(ctx context.Context, soft models.DeviceSoft) error
}

// CatalogService manages the hardware and software type catalog.
type CatalogService struct {
	hard DeviceHardRepository
	soft DeviceSoftRepository
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(hard DeviceHardRepository, soft DeviceSoftRepository) *CatalogService {
	return &CatalogService{hard: hard, soft: soft}
}

// ListDeviceHard returns every hardware type. The result is never nil.
func (s *CatalogService) ListDeviceHard(ctx context.Context) ([]models.DeviceHard, error) {
	items, err := s.hard.ListDeviceHard(ctx)
	if err != nil {
		return nil, err
	}
	return orEmpty(items), nil
}

func (s *CatalogService) AddDeviceHard(ctx context.Context, in models.DeviceHardInput) error {
	return s.hard.AddDeviceHard(ctx, in)
}

func (s *CatalogService) UpdateDeviceHard(ctx context.Context, hard models.DeviceHard) error {
	return s.hard.UpdateDeviceHard(ctx, hard)
}

// ListDeviceSoft returns every software type. The result is never nil.
func (s *CatalogService) ListDeviceSoft(ctx context.Context) ([]models.DeviceSoft, error) {
	items, err := s.soft.ListDeviceSoft(ctx)
	if err != nil {
		return nil, err
	}
	return orEmpty(items), nil
}

func (s *CatalogService) AddDeviceSoft(ctx context.Context, in models.DeviceSoftInput) error {
	return s.soft.AddDeviceSoft(ctx, in)
}

func (s *CatalogService) UpdateDeviceSoft(ctx context.Context, soft models.DeviceSoft) error {
	return s.soft.UpdateDeviceSoft(ctx, soft)
}

// BaseInfo returns both catalogs in one snapshot.
func (s *CatalogService) BaseInfo(ctx context.Context) (models.BaseInfo, error) {
	hard, err := s.ListDeviceHard(ctx)
	if err != nil {
		return models.BaseInfo{}, err
	}
	soft, err := s.ListDeviceSoft(ctx)
	if err != nil {
		return models.BaseInfo{}, err
	}
	return models.BaseInfo{Hard: hard, Soft: soft}, nil
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
