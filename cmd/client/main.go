// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-book-giveaway/internal/client"
	"github.com/MKhiriev/go-book-giveaway/internal/config"
	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	log := logger.New(os.Stderr, "book-giveaway-client", cfg.LogLevel)
	app := client.NewApp(cfg, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
