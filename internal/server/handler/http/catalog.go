package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/FirmAdmin/internal/models"
)

// CatalogService defines the hardware and software type operations.
type CatalogService interface {
	ListDeviceHard(ctx context.Context) ([]models.DeviceHard, error)
	AddDeviceHard(ctx context.Context, in models.DeviceHardInput) error
	UpdateDeviceHard(ctx context.Context, hard models.DeviceHard) error
	ListDeviceSoft(ctx context.Context) ([]models.DeviceSoft, error)
	AddDeviceSoft(ctx context.Context, in models.DeviceSoftInput) error
	UpdateDeviceSoft(ctx context.Context, soft models.DeviceSoft) error
	BaseInfo(ctx context.Context) (models.BaseInfo, error)
}

// CatalogHandler serves /devices, /softTypes and /baseInfo.
type CatalogHandler struct {
	Catalog CatalogService
	Log     *zap.Logger
}

func (h *CatalogHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := h.Catalog.ListDeviceHard(r.Context())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, devices)
}

func (h *CatalogHandler) AddDevice(w http.ResponseWriter, r *http.Request) {
	var req models.DeviceHardInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Catalog.AddDeviceHard(r.Context(), req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeOK(w)
}

// UpdateDevice handles PUT /devices. The id is taken from the body.
func (h *CatalogHandler) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	var req models.DeviceHard
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Catalog.UpdateDeviceHard(r.Context(), req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeOK(w)
}

func (h *CatalogHandler) ListSoftTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Catalog.ListDeviceSoft(r.Context())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, types)
}

func (h *CatalogHandler) AddSoftType(w http.ResponseWriter, r *http.Request) {
	var req models.DeviceSoftInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Catalog.AddDeviceSoft(r.Context(), req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeOK(w)
}

// UpdateSoftType handles PUT /softTypes. The id is taken from the body.
func (h *CatalogHandler) UpdateSoftType(w http.ResponseWriter, r *http.Request) {
	var req models.DeviceSoft
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Catalog.UpdateDeviceSoft(r.Context(), req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeOK(w)
}

// BaseInfo handles GET /baseInfo with both catalogs at once.
func (h *CatalogHandler) BaseInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.Catalog.BaseInfo(r.Context())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, info)
}
