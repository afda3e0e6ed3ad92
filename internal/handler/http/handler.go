// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-book-giveaway/internal/config"
	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/internal/metrics"
	"github.com/MKhiriev/go-book-giveaway/internal/service"
	"github.com/MKhiriev/go-book-giveaway/internal/validators"
)

// Handler owns the REST routes and the middleware chain in front of them.
type Handler struct {
	services *service.Services
	validate validators.Validator
	limiter  *ipRateLimiter
	metrics  *metrics.Metrics
	cfg      config.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, m *metrics.Metrics, logger *logger.Logger) *Handler {
	if m == nil {
		m = metrics.New()
	}
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		validate: validators.NewRequestValidator(),
		limiter:  newIPRateLimiter(cfg.AuthRatePerMinute),
		metrics:  m,
		cfg:      cfg,
		logger:   logger,
	}
}
