// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client for the book giveaway REST API.
//
// [ServerAdapter] hides the transport details (base URL handling, bearer
// token bookkeeping and mapping of HTTP status codes to sentinel errors)
// behind plain method calls operating on [models] types.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-book-giveaway/models"
)

// ServerAdapter is the client-side view of the book giveaway API.
//
// Methods that require authentication send the access token held by the
// adapter. Login and Refresh replace the held token pair on success.
type ServerAdapter interface {
	// SetToken replaces the access token sent with authenticated requests.
	SetToken(token string)
	// Token returns the access token currently held by the adapter.
	Token() string
	// SetTokens replaces the held token pair, e.g. one restored from disk.
	SetTokens(pair models.TokenPair)
	// Tokens returns the full token pair from the last successful Login or Refresh.
	Tokens() models.TokenPair

	Signup(ctx context.Context, req models.SignupRequest) (models.User, error)
	Login(ctx context.Context, identifier, password string) (models.TokenPair, error)
	// Refresh exchanges the held refresh token for a new token pair.
	Refresh(ctx context.Context) (models.TokenPair, error)
	Me(ctx context.Context) (models.User, error)

	ListBooks(ctx context.Context, filter models.BookFilter) ([]models.Book, error)
	GetBook(ctx context.Context, bookID int64) (models.Book, error)
	CreateBook(ctx context.Context, req models.BookCreateRequest) (models.Book, error)
	UpdateBook(ctx context.Context, bookID int64, req models.BookUpdateRequest) (models.Book, error)
	DeleteBook(ctx context.Context, bookID int64) error

	ListGenres(ctx context.Context) ([]models.Genre, error)
	CreateGenre(ctx context.Context, name string) (models.Genre, error)
	ListAuthors(ctx context.Context) ([]models.Author, error)
	CreateAuthor(ctx context.Context, name string) (models.Author, error)

	RequestBook(ctx context.Context, bookID int64, location string) (models.BookRequest, error)
	ListBookRequests(ctx context.Context, bookID int64) ([]models.BookRequest, error)
	ListMyRequests(ctx context.Context) ([]models.BookRequest, error)
	AcceptRequest(ctx context.Context, requestID int64) (models.BookRequest, error)
	WithdrawRequest(ctx context.Context, requestID int64) error

	Version(ctx context.Context) (models.AppBuildInfo, error)
}
