package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinyakov/FirmAdmin/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves
// the firmware API.
//
// Routes:
//
//	POST   /login            → authHandler.Login (public)
//	POST   /user/updatePass  → authHandler.UpdatePass
//	GET    /devices          → catalogHandler.ListDevices
//	POST   /devices          → catalogHandler.AddDevice
//	PUT    /devices          → catalogHandler.UpdateDevice
//	GET    /softTypes        → catalogHandler.ListSoftTypes
//	POST   /softTypes        → catalogHandler.AddSoftType
//	PUT    /softTypes        → catalogHandler.UpdateSoftType
//	GET    /baseInfo         → catalogHandler.BaseInfo
//	GET    /firms            → firmHandler.ListFirms
//	POST   /firms            → firmHandler.AddFirm
//	PUT    /firms            → firmHandler.UpdateFirm
//	GET    /firms/{id}       → firmHandler.ListFirmsForDevice (id is a hardware type)
//	DELETE /firms/{id}       → firmHandler.DeleteFirm (id is a release)
//
// Middleware chain (applied in order):
//  1. Recoverer: turns panics into 500
//  2. WithRequestLogging(logger): logs incoming requests
//  3. AllowContentType("application/json"): rejects non-JSON bodies
//  4. TokenAuth(authenticator, logger): requires the token header except on POST /login
func NewRouter(
	authHandler *AuthHandler,
	catalogHandler *CatalogHandler,
	firmHandler *FirmHandler,
	authenticator middleware.Authenticator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.TokenAuth(authenticator, logger))

	r.Post("/login", authHandler.Login)
	r.Post("/user/updatePass", authHandler.UpdatePass)

	r.Route("/devices", func(r chi.Router) {
		r.Get("/", catalogHandler.ListDevices)
		r.Post("/", catalogHandler.AddDevice)
		r.Put("/", catalogHandler.UpdateDevice)
	})
	r.Route("/softTypes", func(r chi.Router) {
		r.Get("/", catalogHandler.ListSoftTypes)
		r.Post("/", catalogHandler.AddSoftType)
		r.Put("/", catalogHandler.UpdateSoftType)
	})
	r.Get("/baseInfo", catalogHandler.BaseInfo)

	r.Route("/firms", func(r chi.Router) {
		r.Get("/", firmHandler.ListFirms)
		r.Post("/", firmHandler.AddFirm)
		r.Put("/", firmHandler.UpdateFirm)
		r.Get("/{id}", firmHandler.ListFirmsForDevice)
		r.Delete("/{id}", firmHandler.DeleteFirm)
	})

	return r
}
