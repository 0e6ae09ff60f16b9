// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/FirmAdmin/internal/models"
	"github.com/atinyakov/FirmAdmin/internal/service"
)

// TokenHeader carries the access token issued by POST /login.
const TokenHeader = "token"

type ctxKey string

const userKey ctxKey = "user"

// Authenticator resolves an access token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

// TokenAuth is a middleware that requires a valid access token.
//
// POST /login is let through so that a console can obtain its first token.
// On success the resolved user is stored in the request context, see
// UserFromContext.
func TokenAuth(auth Authenticator, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost && r.URL.Path == "/login" {
				next.ServeHTTP(w, r)
				return
			}
			raw := r.Header.Get(TokenHeader)
			if raw == "" {
				http.Error(w, "token required", http.StatusUnauthorized)
				return
			}
			user, err := auth.Authenticate(r.Context(), raw)
			if errors.Is(err, service.ErrTokenInvalid) {
				http.Error(w, service.ErrTokenInvalid.Error(), http.StatusUnauthorized)
				return
			}
			if err != nil {
				log.Error("authenticate", zap.Error(err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the user stored by TokenAuth.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}
