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

// bookRequestService enforces the request visibility rules: the requester
// and the book owner are the only parties to a request. Anyone else is told
// it does not exist.
type bookRequestService struct {
	requestRepository store.BookRequestRepository
	bookRepository    store.BookRepository

	logger *logger.Logger
}

func NewBookRequestService(requestRepository store.BookRequestRepository, bookRepository store.BookRepository, logger *logger.Logger) BookRequestService {
	return &bookRequestService{
		requestRepository: requestRepository,
		bookRepository:    bookRepository,
		logger:            logger,
	}
}

// CreateRequest files a request by user for bookID.
//
// Returns:
//   - ErrNotFound if the book does not exist.
//   - ErrSelfRequestForbidden if user owns the book.
//   - ErrDuplicateRequest if user already requested it.
func (s *bookRequestService) CreateRequest(ctx context.Context, user models.User, bookID int64, location string) (models.BookRequest, error) {
	log := logger.FromContext(ctx)

	location = strings.TrimSpace(location)
	if location == "" {
		return models.BookRequest{}, ErrInvalidDataProvided
	}

	book, err := s.loadBook(ctx, bookID)
	if err != nil {
		return models.BookRequest{}, err
	}
	if book.Owner() == user.UserID {
		return models.BookRequest{}, ErrSelfRequestForbidden
	}

	exists, err := s.requestRepository.RequestExists(ctx, bookID, user.UserID)
	if err != nil {
		log.Err(err).Str("func", "bookRequestService.CreateRequest").Msg("request existence check failed")
		return models.BookRequest{}, fmt.Errorf("request existence check: %w", err)
	}
	if exists {
		return models.BookRequest{}, ErrDuplicateRequest
	}

	request, err := s.requestRepository.CreateRequest(ctx, models.BookRequest{
		BookID:      bookID,
		RequesterID: user.UserID,
		Location:    location,
	})
	switch {
	case errors.Is(err, store.ErrRequestAlreadyExists):
		return models.BookRequest{}, ErrDuplicateRequest
	case errors.Is(err, store.ErrReferenceNotFound):
		// book deleted between the lookup and the insert
		return models.BookRequest{}, ErrNotFound
	case err != nil:
		log.Err(err).Str("func", "bookRequestService.CreateRequest").Int64("book_id", bookID).Msg("request creation failed")
		return models.BookRequest{}, fmt.Errorf("request creation: %w", err)
	}

	log.Info().Int64("request_id", request.ID).Int64("book_id", bookID).Msg("book requested")
	return request, nil
}

// ListBookRequests returns the requests for a book owned by user.
func (s *bookRequestService) ListBookRequests(ctx context.Context, user models.User, bookID int64) ([]models.BookRequest, error) {
	book, err := s.loadBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if err = AuthorizeMutation(user, book); err != nil {
		return nil, err
	}

	requests, err := s.requestRepository.ListRequestsByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("listing book requests: %w", err)
	}
	return requests, nil
}

func (s *bookRequestService) ListMyRequests(ctx context.Context, user models.User) ([]models.BookRequest, error) {
	requests, err := s.requestRepository.ListRequestsByRequester(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing user requests: %w", err)
	}
	return requests, nil
}

// AcceptRequest marks a request as accepted. Only the book owner may accept;
// the requester gets ErrNotOwner, any third party gets ErrNotFound.
func (s *bookRequestService) AcceptRequest(ctx context.Context, user models.User, requestID int64) (models.BookRequest, error) {
	log := logger.FromContext(ctx)

	request, book, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return models.BookRequest{}, err
	}
	if err = AuthorizeMutation(user, book); err != nil {
		if request.Owner() == user.UserID {
			return models.BookRequest{}, ErrNotOwner
		}
		return models.BookRequest{}, ErrNotFound
	}

	if err = s.requestRepository.AcceptRequest(ctx, requestID); err != nil {
		if errors.Is(err, store.ErrRequestNotFound) {
			return models.BookRequest{}, ErrNotFound
		}
		log.Err(err).Str("func", "bookRequestService.AcceptRequest").Int64("request_id", requestID).Msg("accepting request failed")
		return models.BookRequest{}, fmt.Errorf("accepting request: %w", err)
	}

	request.Accepted = true
	log.Info().Int64("request_id", requestID).Msg("request accepted")
	return request, nil
}

// WithdrawRequest deletes a request filed by user. The book owner gets
// ErrNotOwner, any third party gets ErrNotFound.
func (s *bookRequestService) WithdrawRequest(ctx context.Context, user models.User, requestID int64) error {
	log := logger.FromContext(ctx)

	request, book, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if err = AuthorizeMutation(user, request); err != nil {
		if book.Owner() == user.UserID {
			return ErrNotOwner
		}
		return ErrNotFound
	}

	if err = s.requestRepository.DeleteRequest(ctx, requestID); err != nil {
		if errors.Is(err, store.ErrRequestNotFound) {
			return ErrNotFound
		}
		log.Err(err).Str("func", "bookRequestService.WithdrawRequest").Int64("request_id", requestID).Msg("withdrawing request failed")
		return fmt.Errorf("withdrawing request: %w", err)
	}

	log.Info().Int64("request_id", requestID).Msg("request withdrawn")
	return nil
}

func (s *bookRequestService) loadBook(ctx context.Context, bookID int64) (models.Book, error) {
	book, err := s.bookRepository.GetBook(ctx, bookID)
	if errors.Is(err, store.ErrBookNotFound) {
		return models.Book{}, ErrNotFound
	}
	if err != nil {
		return models.Book{}, fmt.Errorf("book lookup: %w", err)
	}
	return book, nil
}

func (s *bookRequestService) loadRequest(ctx context.Context, requestID int64) (models.BookRequest, models.Book, error) {
	request, err := s.requestRepository.GetRequest(ctx, requestID)
	if errors.Is(err, store.ErrRequestNotFound) {
		return models.BookRequest{}, models.Book{}, ErrNotFound
	}
	if err != nil {
		return models.BookRequest{}, models.Book{}, fmt.Errorf("request lookup: %w", err)
	}

	book, err := s.loadBook(ctx, request.BookID)
	if err != nil {
		return models.BookRequest{}, models.Book{}, err
	}
	return request, book, nil
}
