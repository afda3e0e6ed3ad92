// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/internal/store"
	"github.com/MKhiriev/go-book-giveaway/models"
)

type bookService struct {
	bookRepository    store.BookRepository
	catalogRepository store.CatalogRepository

	logger *logger.Logger
}

func NewBookService(bookRepository store.BookRepository, catalogRepository store.CatalogRepository, logger *logger.Logger) BookService {
	return &bookService{
		bookRepository:    bookRepository,
		catalogRepository: catalogRepository,
		logger:            logger,
	}
}

// CreateBook stores a new book owned by user. Genre and author are looked
// up by name and created when missing.
func (s *bookService) CreateBook(ctx context.Context, user models.User, req models.BookCreateRequest) (models.Book, error) {
	log := logger.FromContext(ctx)

	title := strings.TrimSpace(req.Title)
	genreName := strings.TrimSpace(req.Genre)
	authorName := strings.TrimSpace(req.Author)
	if title == "" || genreName == "" || authorName == "" {
		return models.Book{}, ErrInvalidDataProvided
	}

	genre, err := s.catalogRepository.GetOrCreateGenre(ctx, genreName)
	if err != nil {
		log.Err(err).Str("func", "bookService.CreateBook").Msg("genre lookup failed")
		return models.Book{}, fmt.Errorf("genre lookup: %w", err)
	}
	author, err := s.catalogRepository.GetOrCreateAuthor(ctx, authorName)
	if err != nil {
		log.Err(err).Str("func", "bookService.CreateBook").Msg("author lookup failed")
		return models.Book{}, fmt.Errorf("author lookup: %w", err)
	}

	book, err := s.bookRepository.CreateBook(ctx, models.Book{
		Title:     title,
		Condition: strings.TrimSpace(req.Condition),
		GenreID:   genre.ID,
		AuthorID:  author.ID,
		OwnerID:   user.UserID,
	})
	if err != nil {
		log.Err(err).Str("func", "bookService.CreateBook").Int64("owner_id", user.UserID).Msg("book creation failed")
		return models.Book{}, fmt.Errorf("book creation: %w", err)
	}

	book.Genre = genre.Name
	book.Author = author.Name
	log.Info().Int64("book_id", book.ID).Int64("owner_id", user.UserID).Msg("book created")
	return book, nil
}

func (s *bookService) GetBook(ctx context.Context, bookID int64) (models.Book, error) {
	return s.loadBook(ctx, bookID)
}

func (s *bookService) ListBooks(ctx context.Context, filter models.BookFilter) ([]models.Book, error) {
	books, err := s.bookRepository.ListBooks(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "bookService.ListBooks").Msg("listing books failed")
		return nil, fmt.Errorf("listing books: %w", err)
	}
	return books, nil
}

// UpdateBook applies the non-nil fields of req. The book must exist and be
// owned by user.
func (s *bookService) UpdateBook(ctx context.Context, user models.User, bookID int64, req models.BookUpdateRequest) (models.Book, error) {
	log := logger.FromContext(ctx)

	book, err := s.loadBook(ctx, bookID)
	if err != nil {
		return models.Book{}, err
	}
	if err = AuthorizeMutation(user, book); err != nil {
		log.Warn().Int64("book_id", bookID).Int64("user_id", user.UserID).Msg("update of foreign book refused")
		return models.Book{}, err
	}

	update, err := s.buildUpdate(ctx, bookID, req)
	if err != nil {
		return models.Book{}, err
	}
	if update.Empty() {
		return book, nil
	}

	if err = s.bookRepository.UpdateBook(ctx, update); err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return models.Book{}, ErrNotFound
		}
		log.Err(err).Str("func", "bookService.UpdateBook").Int64("book_id", bookID).Msg("book update failed")
		return models.Book{}, fmt.Errorf("book update: %w", err)
	}

	return s.loadBook(ctx, bookID)
}

// DeleteBook removes a book owned by user together with its requests.
func (s *bookService) DeleteBook(ctx context.Context, user models.User, bookID int64) error {
	log := logger.FromContext(ctx)

	book, err := s.loadBook(ctx, bookID)
	if err != nil {
		return err
	}
	if err = AuthorizeMutation(user, book); err != nil {
		log.Warn().Int64("book_id", bookID).Int64("user_id", user.UserID).Msg("deletion of foreign book refused")
		return err
	}

	if err = s.bookRepository.DeleteBook(ctx, bookID); err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return ErrNotFound
		}
		log.Err(err).Str("func", "bookService.DeleteBook").Int64("book_id", bookID).Msg("book deletion failed")
		return fmt.Errorf("book deletion: %w", err)
	}

	log.Info().Int64("book_id", bookID).Msg("book deleted")
	return nil
}

func (s *bookService) loadBook(ctx context.Context, bookID int64) (models.Book, error) {
	book, err := s.bookRepository.GetBook(ctx, bookID)
	if errors.Is(err, store.ErrBookNotFound) {
		return models.Book{}, ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "bookService.loadBook").Int64("book_id", bookID).Msg("book lookup failed")
		return models.Book{}, fmt.Errorf("book lookup: %w", err)
	}
	return book, nil
}

func (s *bookService) buildUpdate(ctx context.Context, bookID int64, req models.BookUpdateRequest) (models.BookUpdate, error) {
	update := models.BookUpdate{ID: bookID}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return models.BookUpdate{}, ErrInvalidDataProvided
		}
		update.Title = &title
	}
	if req.Condition != nil {
		condition := strings.TrimSpace(*req.Condition)
		update.Condition = &condition
	}
	if req.Genre != nil {
		name := strings.TrimSpace(*req.Genre)
		if name == "" {
			return models.BookUpdate{}, ErrInvalidDataProvided
		}
		genre, err := s.catalogRepository.GetOrCreateGenre(ctx, name)
		if err != nil {
			return models.BookUpdate{}, fmt.Errorf("genre lookup: %w", err)
		}
		update.GenreID = &genre.ID
	}
	if req.Author != nil {
		name := strings.TrimSpace(*req.Author)
		if name == "" {
			return models.BookUpdate{}, ErrInvalidDataProvided
		}
		author, err := s.catalogRepository.GetOrCreateAuthor(ctx, name)
		if err != nil {
			return models.BookUpdate{}, fmt.Errorf("author lookup: %w", err)
		}
		update.AuthorID = &author.ID
	}

	return update, nil
}
