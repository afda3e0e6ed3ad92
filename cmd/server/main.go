// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"os"

	"github.com/MKhiriev/go-book-giveaway/internal/config"
	"github.com/MKhiriev/go-book-giveaway/internal/handler"
	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/internal/metrics"
	"github.com/MKhiriev/go-book-giveaway/internal/server"
	"github.com/MKhiriev/go-book-giveaway/internal/service"
	"github.com/MKhiriev/go-book-giveaway/internal/store"
	"github.com/MKhiriev/go-book-giveaway/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("book-giveaway-server", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("book-giveaway-server", cfg.App.LogLevel)
	log.Info().
		Str("version", build.Version).
		Str("build_date", build.Date).
		Str("build_commit", build.Commit).
		Str("driver", cfg.Storage.DB.Driver).
		Str("address", cfg.Server.HTTPAddress).
		Msg("starting")

	db, err := store.NewDB(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	services, err := service.NewServices(store.NewRepositories(db, log), cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, metrics.New(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
