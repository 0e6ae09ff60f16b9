package service

import (
	"context"

	"github.com/atinyakov/FirmAdmin/internal/models"
)

// FirmRepository persists firmware releases.
type FirmRepository interface {
	// ListFirms returns all releases, newest first.
	ListFirms(ctx context.Context) ([]models.Firm, error)
	// ListFirmsByHardVersion returns the releases for one hardware type,
	// newest first.
	ListFirmsByHardVersion(ctx context.Context, hardVersion int) ([]models.Firm, error)
	AddFirm(ctx context.Context, in models.FirmInput) error
	// UpdateFirm and DeleteFirm return ErrNotFound when no row matches.
	UpdateFirm(ctx context.Context, firm models.Firm) error
	DeleteFirm(ctx context.Context, id int) error
}

// FirmService manages firmware releases.
type FirmService struct {
	repo FirmRepository
}

// NewFirmService constructs a FirmService over repo.
func NewFirmService(repo FirmRepository) *FirmService {
	return &FirmService{repo: repo}
}

func (s *FirmService) ListFirms(ctx context.Context) ([]models.Firm, error) {
	firms, err := s.repo.ListFirms(ctx)
	if err != nil {
		return nil, err
	}
	return orEmpty(firms), nil
}

// ListFirmsForDevice returns the releases targeting hardware type deviceID.
func (s *FirmService) ListFirmsForDevice(ctx context.Context, deviceID int) ([]models.Firm, error) {
	firms, err := s.repo.ListFirmsByHardVersion(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return orEmpty(firms), nil
}

// AddFirm stores a release. A Max bound without RelyVersionType or Min is
// dropped.
func (s *FirmService) AddFirm(ctx context.Context, in models.FirmInput) error {
	return s.repo.AddFirm(ctx, in.Normalized())
}

// UpdateFirm replaces a release, normalizing it like AddFirm.
func (s *FirmService) UpdateFirm(ctx context.Context, firm models.Firm) error {
	return s.repo.UpdateFirm(ctx, firm.Normalized())
}

func (s *FirmService) DeleteFirm(ctx context.Context, id int) error {
	return s.repo.DeleteFirm(ctx, id)
}
