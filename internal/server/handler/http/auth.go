// Package http provides the HTTP handlers and the router of the firmware API.
package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/FirmAdmin/internal/middleware"
	"github.com/atinyakov/FirmAdmin/internal/models"
	"github.com/atinyakov/FirmAdmin/internal/service"
)

// AuthService defines the authentication operations required by the
// HTTP handlers.
type AuthService interface {
	Login(ctx context.Context, in models.Login) (models.Token, error)
	ChangePassword(ctx context.Context, user models.User, in models.PasswordUpdate) error
}

// AuthHandler handles console login and password changes.
type AuthHandler struct {
	AuthService AuthService
	Log         *zap.Logger
}

// Login handles POST /login. It answers with an access token and the
// profile of the user.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.Login
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	token, err := h.AuthService.Login(r.Context(), req)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, token)
}

// UpdatePass handles POST /user/updatePass for the authenticated user.
func (h *AuthHandler) UpdatePass(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.Log, service.ErrTokenInvalid)
		return
	}

	var req models.PasswordUpdate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	if err := h.AuthService.ChangePassword(r.Context(), user, req); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeOK(w)
}
