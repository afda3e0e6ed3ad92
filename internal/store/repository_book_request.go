// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/models"
	sq "github.com/Masterminds/squirrel"
)

type bookRequestRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewBookRequestRepository constructs a [BookRequestRepository] backed by db.
func NewBookRequestRepository(db *DB, logger *logger.Logger) BookRequestRepository {
	logger.Debug().Msg("creating book request repository")
	return &bookRequestRepository{
		db:     db,
		logger: logger,
	}
}

// CreateRequest inserts a new, not yet accepted request.
//
// Error handling:
//   - unique (book_id, requester_id) violation → [ErrRequestAlreadyExists];
//   - missing book or user → [ErrReferenceNotFound].
func (r *bookRequestRepository) CreateRequest(ctx context.Context, request models.BookRequest) (models.BookRequest, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	query, args, err := r.db.buildInsertRequestQuery(request, now)
	if err != nil {
		return models.BookRequest{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.retry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&request.ID)
	})
	if err != nil {
		switch r.db.classify(err) {
		case UniqueViolation:
			return models.BookRequest{}, ErrRequestAlreadyExists
		case ForeignKeyViolation:
			return models.BookRequest{}, ErrReferenceNotFound
		}
		log.Err(err).
			Str("func", "*bookRequestRepository.CreateRequest").
			Int64("book_id", request.BookID).
			Int64("requester_id", request.RequesterID).
			Msg("error inserting book request")
		return models.BookRequest{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	request.Accepted = false
	request.CreatedAt = now
	return request, nil
}

func (r *bookRequestRepository) GetRequest(ctx context.Context, requestID int64) (models.BookRequest, error) {
	requests, err := r.selectRequests(ctx, sq.Eq{"id": requestID})
	if err != nil {
		return models.BookRequest{}, err
	}
	if len(requests) == 0 {
		return models.BookRequest{}, ErrRequestNotFound
	}
	return requests[0], nil
}

func (r *bookRequestRepository) RequestExists(ctx context.Context, bookID, requesterID int64) (bool, error) {
	query, args, err := r.db.buildRequestExistsQuery(bookID, requesterID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return exists(ctx, r.db, query, args)
}

func (r *bookRequestRepository) ListRequestsByBook(ctx context.Context, bookID int64) ([]models.BookRequest, error) {
	return r.selectRequests(ctx, sq.Eq{"book_id": bookID})
}

func (r *bookRequestRepository) ListRequestsByRequester(ctx context.Context, requesterID int64) ([]models.BookRequest, error) {
	return r.selectRequests(ctx, sq.Eq{"requester_id": requesterID})
}

// AcceptRequest marks the request accepted. Accepting twice is a no-op.
func (r *bookRequestRepository) AcceptRequest(ctx context.Context, requestID int64) error {
	query, args, err := r.db.buildAcceptRequestQuery(requestID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "*bookRequestRepository.AcceptRequest", requestID, query, args)
}

func (r *bookRequestRepository) DeleteRequest(ctx context.Context, requestID int64) error {
	query, args, err := r.db.buildDeleteQuery(bookRequestsTable, requestID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "*bookRequestRepository.DeleteRequest", requestID, query, args)
}

func (r *bookRequestRepository) exec(ctx context.Context, funcName string, requestID int64, query string, args []any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.execRetry(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", funcName).Int64("request_id", requestID).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireAffected(result, ErrRequestNotFound)
}

func (r *bookRequestRepository) selectRequests(ctx context.Context, where sq.Eq) ([]models.BookRequest, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildSelectRequestsQuery(where)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*bookRequestRepository.selectRequests").Msg("error selecting book requests")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	requests := make([]models.BookRequest, 0)
	for rows.Next() {
		var request models.BookRequest
		err = rows.Scan(
			&request.ID,
			&request.BookID,
			&request.RequesterID,
			&request.Location,
			&request.Accepted,
			&request.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		requests = append(requests, request)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return requests, nil
}
