// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-book-giveaway/internal/config"
	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/internal/store"
	"github.com/MKhiriev/go-book-giveaway/models"
)

// Services aggregates every server-side service consumed by the HTTP handler.
type Services struct {
	AuthService        AuthService
	BookService        BookService
	CatalogService     CatalogService
	BookRequestService BookRequestService
	AppInfoService     AppInfoService
}

func NewServices(repositories *store.Repositories, cfg *config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	authService, err := NewAuthService(repositories.UserRepository, cfg.Auth, logger)
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	return &Services{
		AuthService:        authService,
		BookService:        NewBookService(repositories.BookRepository, repositories.CatalogRepository, logger),
		CatalogService:     NewCatalogService(repositories.CatalogRepository, logger),
		BookRequestService: NewBookRequestService(repositories.BookRequestRepository, repositories.BookRepository, logger),
		AppInfoService:     appInfoService,
	}, nil
}
