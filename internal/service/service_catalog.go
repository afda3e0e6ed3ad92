// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/internal/store"
	"github.com/MKhiriev/go-book-giveaway/models"
)

type catalogService struct {
	catalogRepository store.CatalogRepository

	logger *logger.Logger
}

func NewCatalogService(catalogRepository store.CatalogRepository, logger *logger.Logger) CatalogService {
	return &catalogService{catalogRepository: catalogRepository, logger: logger}
}

func (s *catalogService) GetOrCreateGenre(ctx context.Context, name string) (models.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Genre{}, ErrInvalidDataProvided
	}
	genre, err := s.catalogRepository.GetOrCreateGenre(ctx, name)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "catalogService.GetOrCreateGenre").Str("genre", name).Msg("genre lookup failed")
		return models.Genre{}, fmt.Errorf("genre lookup: %w", err)
	}
	return genre, nil
}

func (s *catalogService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	genres, err := s.catalogRepository.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing genres: %w", err)
	}
	return genres, nil
}

func (s *catalogService) GetOrCreateAuthor(ctx context.Context, name string) (models.Author, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Author{}, ErrInvalidDataProvided
	}
	author, err := s.catalogRepository.GetOrCreateAuthor(ctx, name)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "catalogService.GetOrCreateAuthor").Str("author", name).Msg("author lookup failed")
		return models.Author{}, fmt.Errorf("author lookup: %w", err)
	}
	return author, nil
}

func (s *catalogService) ListAuthors(ctx context.Context) ([]models.Author, error) {
	authors, err := s.catalogRepository.ListAuthors(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing authors: %w", err)
	}
	return authors, nil
}
