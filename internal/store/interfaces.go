// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-book-giveaway/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUser(ctx context.Context, field models.LoginField, value string) (models.User, error)
	UserExists(ctx context.Context, username, email string) (bool, error)
}

// BookRepository persists books.
type BookRepository interface {
	CreateBook(ctx context.Context, book models.Book) (models.Book, error)
	GetBook(ctx context.Context, bookID int64) (models.Book, error)
	ListBooks(ctx context.Context, filter models.BookFilter) ([]models.Book, error)
	UpdateBook(ctx context.Context, update models.BookUpdate) error
	DeleteBook(ctx context.Context, bookID int64) error
}

// CatalogRepository persists genres and authors. The GetOrCreate methods
// are idempotent: concurrent calls with the same name converge on one row.
type CatalogRepository interface {
	GetOrCreateGenre(ctx context.Context, name string) (models.Genre, error)
	ListGenres(ctx context.Context) ([]models.Genre, error)
	GetOrCreateAuthor(ctx context.Context, name string) (models.Author, error)
	ListAuthors(ctx context.Context) ([]models.Author, error)
}

// BookRequestRepository persists borrow/giveaway requests.
type BookRequestRepository interface {
	CreateRequest(ctx context.Context, request models.BookRequest) (models.BookRequest, error)
	GetRequest(ctx context.Context, requestID int64) (models.BookRequest, error)
	RequestExists(ctx context.Context, bookID, requesterID int64) (bool, error)
	ListRequestsByBook(ctx context.Context, bookID int64) ([]models.BookRequest, error)
	ListRequestsByRequester(ctx context.Context, requesterID int64) ([]models.BookRequest, error)
	AcceptRequest(ctx context.Context, requestID int64) error
	DeleteRequest(ctx context.Context, requestID int64) error
}
