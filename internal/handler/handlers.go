// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/go-book-giveaway/internal/config"
	"github.com/MKhiriev/go-book-giveaway/internal/handler/http"
	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/internal/metrics"
	"github.com/MKhiriev/go-book-giveaway/internal/service"
)

// Handlers groups the transport handlers the server exposes.
type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, m *metrics.Metrics, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg, m, logger),
	}, nil
}
