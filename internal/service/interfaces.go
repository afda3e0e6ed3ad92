// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-book-giveaway/models"
)

// AuthService covers signup, login, token refresh and resolving an access
// token to the calling user.
type AuthService interface {
	RegisterUser(ctx context.Context, username, email, password string) (models.User, error)
	Login(ctx context.Context, identifier, password string) (models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	Authenticate(ctx context.Context, accessToken string) (models.User, error)
}

// BookService manages books. Mutations are restricted to the book's owner.
type BookService interface {
	CreateBook(ctx context.Context, user models.User, req models.BookCreateRequest) (models.Book, error)
	GetBook(ctx context.Context, bookID int64) (models.Book, error)
	ListBooks(ctx context.Context, filter models.BookFilter) ([]models.Book, error)
	UpdateBook(ctx context.Context, user models.User, bookID int64, req models.BookUpdateRequest) (models.Book, error)
	DeleteBook(ctx context.Context, user models.User, bookID int64) error
}

// CatalogService manages genres and authors.
type CatalogService interface {
	GetOrCreateGenre(ctx context.Context, name string) (models.Genre, error)
	ListGenres(ctx context.Context) ([]models.Genre, error)
	GetOrCreateAuthor(ctx context.Context, name string) (models.Author, error)
	ListAuthors(ctx context.Context) ([]models.Author, error)
}

// BookRequestService manages borrow/giveaway requests. A request is visible
// only to its requester and to the owner of the requested book.
type BookRequestService interface {
	CreateRequest(ctx context.Context, user models.User, bookID int64, location string) (models.BookRequest, error)
	ListBookRequests(ctx context.Context, user models.User, bookID int64) ([]models.BookRequest, error)
	ListMyRequests(ctx context.Context, user models.User) ([]models.BookRequest, error)
	AcceptRequest(ctx context.Context, user models.User, requestID int64) (models.BookRequest, error)
	WithdrawRequest(ctx context.Context, user models.User, requestID int64) error
}

// AppInfoService exposes build and version information.
type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppBuildInfo
}
