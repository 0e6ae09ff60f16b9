// Package main is the interactive admin console of the firmware API.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/atinyakov/FirmAdmin/internal/client/api"
	"github.com/atinyakov/FirmAdmin/internal/config"
	"github.com/atinyakov/FirmAdmin/internal/logger"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	opts, err := config.ParseClient(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if opts.ShowVersion {
		fmt.Printf("FirmAdmin Client\nVersion: %s\nBuild Date: %s\n", cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))
		return
	}

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(opts.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	httpClient, err := api.NewHTTPClient(opts.CAFile, opts.Timeout)
	if err != nil {
		log.Log.Fatal("failed to build http client", zap.Error(err))
	}

	client := api.NewClient(opts.BaseURL, api.NewSession(),
		api.WithHTTPClient(httpClient),
		api.WithLogger(log.Log),
		api.WithUpload(uploadConfig(opts.Upload)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	newShell(client, os.Stdin, os.Stdout).run(ctx)
}

func uploadConfig(o config.UploadOptions) api.UploadConfig {
	return api.UploadConfig(o)
}
