package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/FirmAdmin/internal/models"
)

// FirmService defines the firmware release operations.
type FirmService interface {
	ListFirms(ctx context.Context) ([]models.Firm, error)
	ListFirmsForDevice(ctx context.Context, deviceID int) ([]models.Firm, error)
	AddFirm(ctx context.Context, in models.FirmInput) error
	UpdateFirm(ctx context.Context, firm models.Firm) error
	DeleteFirm(ctx context.Context, id int) error
}

// FirmHandler serves /firms.
type FirmHandler struct {
	Firms FirmService
	Log   *zap.Logger
}

func (h *FirmHandler) ListFirms(w http.ResponseWriter, r *http.Request) {
	firms, err := h.Firms.ListFirms(r.Context())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, firms)
}

// ListFirmsForDevice handles GET /firms/{id}, where id is a hardware type.
func (h *FirmHandler) ListFirmsForDevice(w http.ResponseWriter, r *http.Request) {
	deviceID, err := intParam(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	firms, err := h.Firms.ListFirmsForDevice(r.Context(), deviceID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, firms)
}

func (h *FirmHandler) AddFirm(w http.ResponseWriter, r *http.Request) {
	var req models.FirmInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Firms.AddFirm(r.Context(), req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeOK(w)
}

// UpdateFirm handles PUT /firms. The id is taken from the body.
func (h *FirmHandler) UpdateFirm(w http.ResponseWriter, r *http.Request) {
	var req models.Firm
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Firms.UpdateFirm(r.Context(), req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeOK(w)
}

// DeleteFirm handles DELETE /firms/{id}, where id is a release.
func (h *FirmHandler) DeleteFirm(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.Firms.DeleteFirm(r.Context(), id); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeOK(w)
}
