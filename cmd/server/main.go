// Package main initializes and starts the firmware API server,
// setting up configuration, logging, the database, repositories,
// services and handlers.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/FirmAdmin/internal/config"
	"github.com/atinyakov/FirmAdmin/internal/db"
	"github.com/atinyakov/FirmAdmin/internal/logger"
	"github.com/atinyakov/FirmAdmin/internal/repository"
	"github.com/atinyakov/FirmAdmin/internal/server/handler/http"
	"github.com/atinyakov/FirmAdmin/internal/service"
)

const (
	healthInterval  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	options, err := config.ParseServer(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	db.StartHealthCheck(ctx, postgresDB, healthInterval, zapLogger)

	userRepo := repository.NewPostgresUserRepository(postgresDB)
	deviceRepo := repository.NewPostgresDeviceRepository(postgresDB)
	firmRepo := repository.NewPostgresFirmRepository(postgresDB)

	tokens := service.NewTokens(options.TokenSecret, service.DefaultTokenTTL)
	authService := service.NewAuthService(userRepo, tokens)
	catalogService := service.NewCatalogService(deviceRepo, deviceRepo)
	firmService := service.NewFirmService(firmRepo)

	authHandler := &http.AuthHandler{AuthService: authService, Log: zapLogger}
	catalogHandler := &http.CatalogHandler{Catalog: catalogService, Log: zapLogger}
	firmHandler := &http.FirmHandler{Firms: firmService, Log: zapLogger}

	router := http.NewRouter(authHandler, catalogHandler, firmHandler, authService, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
