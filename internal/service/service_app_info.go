// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-book-giveaway/internal/config"
	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/models"
)

type appInfoService struct {
	info models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService reports the version baked in at build time, falling
// back to cfg.Version. It fails when neither is set.
func NewAppInfoService(cfg config.App, build models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if build.Version == "" || build.Version == models.NotAvailable {
		build.Version = cfg.Version
	}
	if build.Version == "" || build.Version == models.NotAvailable {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		info:   build,
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppInfo(ctx context.Context) models.AppBuildInfo {
	return s.info
}
