// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/models"
)

// bookRepository is the SQL implementation of [BookRepository]. Reads join
// genres and authors so returned books carry their names.
type bookRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewBookRepository constructs a [BookRepository] backed by db.
func NewBookRepository(db *DB, logger *logger.Logger) BookRepository {
	logger.Debug().Msg("creating book repository")
	return &bookRepository{
		db:     db,
		logger: logger,
	}
}

// CreateBook inserts book and returns it with the assigned id. A missing
// genre, author or owner yields [ErrReferenceNotFound].
func (r *bookRepository) CreateBook(ctx context.Context, book models.Book) (models.Book, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	query, args, err := r.db.buildInsertBookQuery(book, now)
	if err != nil {
		return models.Book{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.retry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&book.ID)
	})
	if err != nil {
		if r.db.classify(err) == ForeignKeyViolation {
			return models.Book{}, ErrReferenceNotFound
		}
		log.Err(err).Str("func", "*bookRepository.CreateBook").Int64("owner_id", book.OwnerID).Msg("error inserting book")
		return models.Book{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	book.CreatedAt = now
	return book, nil
}

// GetBook returns the book with bookID or [ErrBookNotFound].
func (r *bookRepository) GetBook(ctx context.Context, bookID int64) (models.Book, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildGetBookQuery(bookID)
	if err != nil {
		return models.Book{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	book, err := scanBook(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Book{}, ErrBookNotFound
		}
		log.Err(err).Str("func", "*bookRepository.GetBook").Int64("book_id", bookID).Msg("error scanning book")
		return models.Book{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return book, nil
}

// ListBooks returns all books matching filter ordered by id.
func (r *bookRepository) ListBooks(ctx context.Context, filter models.BookFilter) ([]models.Book, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildListBooksQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*bookRepository.ListBooks").Msg("error listing books")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	books := make([]models.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		books = append(books, book)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return books, nil
}

// UpdateBook writes the non-nil fields of update. [ErrBookNotFound] is
// returned when no row has update.ID.
func (r *bookRepository) UpdateBook(ctx context.Context, update models.BookUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildUpdateBookQuery(update)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.execRetry(ctx, query, args)
	if err != nil {
		if r.db.classify(err) == ForeignKeyViolation {
			return ErrReferenceNotFound
		}
		log.Err(err).Str("func", "*bookRepository.UpdateBook").Int64("book_id", update.ID).Msg("error updating book")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireAffected(result, ErrBookNotFound)
}

// DeleteBook removes the book and, through the foreign key cascade, its
// requests.
func (r *bookRepository) DeleteBook(ctx context.Context, bookID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildDeleteQuery(booksTable, bookID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.execRetry(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "*bookRepository.DeleteBook").Int64("book_id", bookID).Msg("error deleting book")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireAffected(result, ErrBookNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (models.Book, error) {
	var book models.Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Condition,
		&book.GenreID,
		&book.Genre,
		&book.AuthorID,
		&book.Author,
		&book.OwnerID,
		&book.CreatedAt,
	)
	return book, err
}

// requireAffected turns a zero-row UPDATE/DELETE into notFound.
func requireAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
