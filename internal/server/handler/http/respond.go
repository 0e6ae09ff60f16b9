package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/FirmAdmin/internal/models"
	"github.com/atinyakov/FirmAdmin/internal/service"
)

var errInvalidRequest = errors.New("invalid request")

// statusOf maps service errors to HTTP statuses.
var statusOf = []struct {
	err    error
	status int
}{
	{service.ErrTokenInvalid, http.StatusUnauthorized},
	{service.ErrBadCredentials, http.StatusUnauthorized},
	{service.ErrWrongPassword, http.StatusUnauthorized},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrConflict, http.StatusConflict},
	{errInvalidRequest, http.StatusBadRequest},
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeOK acknowledges a mutation.
func writeOK(w http.ResponseWriter) {
	writeJSON(w, models.APIResponse{Message: "ok"})
}

// writeError answers with the status of err and its text. Unknown errors
// are logged and reported as a bare 500.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	for _, s := range statusOf {
		if errors.Is(err, s.err) {
			http.Error(w, s.err.Error(), s.status)
			return
		}
	}
	if log != nil {
		log.Error("request failed", zap.Error(err))
	}
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errInvalidRequest
	}
	return nil
}

func intParam(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, errInvalidRequest
	}
	return v, nil
}
