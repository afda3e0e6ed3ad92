// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/models"
)

type catalogRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewCatalogRepository constructs a [CatalogRepository] backed by db.
func NewCatalogRepository(db *DB, logger *logger.Logger) CatalogRepository {
	logger.Debug().Msg("creating catalog repository")
	return &catalogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *catalogRepository) GetOrCreateGenre(ctx context.Context, name string) (models.Genre, error) {
	id, err := r.getOrCreate(ctx, genresTable, name)
	if err != nil {
		return models.Genre{}, err
	}
	return models.Genre{ID: id, Name: name}, nil
}

func (r *catalogRepository) ListGenres(ctx context.Context) ([]models.Genre, error) {
	genres := make([]models.Genre, 0)
	err := r.list(ctx, genresTable, func(id int64, name string) {
		genres = append(genres, models.Genre{ID: id, Name: name})
	})
	return genres, err
}

func (r *catalogRepository) GetOrCreateAuthor(ctx context.Context, name string) (models.Author, error) {
	id, err := r.getOrCreate(ctx, authorsTable, name)
	if err != nil {
		return models.Author{}, err
	}
	return models.Author{ID: id, Name: name}, nil
}

func (r *catalogRepository) ListAuthors(ctx context.Context) ([]models.Author, error) {
	authors := make([]models.Author, 0)
	err := r.list(ctx, authorsTable, func(id int64, name string) {
		authors = append(authors, models.Author{ID: id, Name: name})
	})
	return authors, err
}

// getOrCreate inserts name unless present and returns the row id. The
// insert is a no-op on conflict, so concurrent callers converge on the
// same row.
func (r *catalogRepository) getOrCreate(ctx context.Context, table, name string) (int64, error) {
	log := logger.FromContext(ctx)

	insert, args, err := r.db.buildInsertNameQuery(table, name)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = r.db.execRetry(ctx, insert, args); err != nil {
		log.Err(err).Str("func", "*catalogRepository.getOrCreate").Str("table", table).Msg("error inserting name")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err := r.db.buildFindByNameQuery(table, name)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		id    int64
		found string
	)
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&id, &found); err != nil {
		log.Err(err).Str("func", "*catalogRepository.getOrCreate").Str("table", table).Msg("error selecting name")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return id, nil
}

func (r *catalogRepository) list(ctx context.Context, table string, add func(id int64, name string)) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildListNamesQuery(table)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*catalogRepository.list").Str("table", table).Msg("error listing names")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err = rows.Scan(&id, &name); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		add(id, name)
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return nil
}
