// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-book-giveaway/internal/service"
	"github.com/MKhiriev/go-book-giveaway/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBooks_Filters(t *testing.T) {
	var got models.BookFilter
	svcs := newTestServices()
	svcs.BookService = &mockBookService{
		listFn: func(_ context.Context, filter models.BookFilter) ([]models.Book, error) {
			got = filter
			return nil, nil
		},
	}
	h := newTestHTTPHandler(t, svcs)

	rec := serve(t, h, http.MethodGet, "/api/books?genre=Sci-Fi&author=Le+Guin&owner=7", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String(), "an empty result is a JSON array, not null")
	assert.Equal(t, models.BookFilter{Genre: "Sci-Fi", Author: "Le Guin", OwnerID: 7}, got)
}

func TestListBooks_InvalidOwner(t *testing.T) {
	h := newTestHTTPHandler(t, newTestServices())

	rec := serve(t, h, http.MethodGet, "/api/books?owner=alice", "", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBook(t *testing.T) {
	svcs := newTestServices()
	svcs.BookService = &mockBookService{
		getFn: func(_ context.Context, id int64) (models.Book, error) {
			if id == 3 {
				return models.Book{ID: 3, Title: "Dune"}, nil
			}
			return models.Book{}, service.ErrNotFound
		},
	}
	h := newTestHTTPHandler(t, svcs)

	rec := serve(t, h, http.MethodGet, "/api/books/3", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Dune", decodeBody[models.Book](t, rec).Title)

	assert.Equal(t, http.StatusNotFound, serve(t, h, http.MethodGet, "/api/books/4", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, h, http.MethodGet, "/api/books/abc", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, h, http.MethodGet, "/api/books/0", "", "").Code)
}

func TestCreateBook(t *testing.T) {
	svcs := newTestServices()
	svcs.BookService = &mockBookService{
		createFn: func(_ context.Context, user models.User, req models.BookCreateRequest) (models.Book, error) {
			assert.Equal(t, testUser.UserID, user.UserID)
			return models.Book{ID: 5, Title: req.Title, Genre: req.Genre, Author: req.Author, OwnerID: user.UserID}, nil
		},
	}
	h := newTestHTTPHandler(t, svcs)

	rec := serve(t, h, http.MethodPost, "/api/books",
		`{"title":"Dune","condition":"good","genre":"Sci-Fi","author":"Frank Herbert"}`, testToken)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/books/5", rec.Header().Get("Location"))
	book := decodeBody[models.Book](t, rec)
	assert.Equal(t, testUser.UserID, book.OwnerID)
}

func TestCreateBook_MissingGenre(t *testing.T) {
	h := newTestHTTPHandler(t, newTestServices())

	rec := serve(t, h, http.MethodPost, "/api/books", `{"title":"Dune","author":"Frank Herbert"}`, testToken)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "genre: required")
}

func TestCreateBook_BlankTitle(t *testing.T) {
	h := newTestHTTPHandler(t, newTestServices())

	rec := serve(t, h, http.MethodPost, "/api/books", `{"title":"   ","genre":"Sci-Fi","author":"Frank Herbert"}`, testToken)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title: notblank")
}

func TestUpdateBook(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantBody   string
	}{
		{name: "owner", wantStatus: http.StatusOK},
		{name: "not owner", serviceErr: service.ErrNotOwner, wantStatus: http.StatusForbidden, wantBody: service.ErrNotOwner.Error()},
		{name: "missing", serviceErr: service.ErrNotFound, wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs := newTestServices()
			svcs.BookService = &mockBookService{
				updateFn: func(_ context.Context, _ models.User, id int64, req models.BookUpdateRequest) (models.Book, error) {
					require.NotNil(t, req.Title)
					assert.Nil(t, req.Genre)
					return models.Book{ID: id, Title: *req.Title}, tt.serviceErr
				},
			}
			h := newTestHTTPHandler(t, svcs)

			rec := serve(t, h, http.MethodPut, "/api/books/3", `{"title":"Renamed"}`, testToken)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestUpdateBook_EmptyTitleRejected(t *testing.T) {
	h := newTestHTTPHandler(t, newTestServices())

	rec := serve(t, h, http.MethodPut, "/api/books/3", `{"title":""}`, testToken)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteBook(t *testing.T) {
	svcs := newTestServices()
	svcs.BookService = &mockBookService{
		deleteFn: func(_ context.Context, user models.User, id int64) error {
			if id == 3 {
				return nil
			}
			return service.ErrNotOwner
		},
	}
	h := newTestHTTPHandler(t, svcs)

	ok := serve(t, h, http.MethodDelete, "/api/books/3", "", testToken)
	assert.Equal(t, http.StatusNoContent, ok.Code)
	assert.Empty(t, ok.Body.String())

	assert.Equal(t, http.StatusForbidden, serve(t, h, http.MethodDelete, "/api/books/4", "", testToken).Code)
}

func TestCatalogRoutes(t *testing.T) {
	svcs := newTestServices()
	svcs.CatalogService = &mockCatalogService{genres: []models.Genre{{ID: 1, Name: "Drama"}}}
	h := newTestHTTPHandler(t, svcs)

	list := serve(t, h, http.MethodGet, "/api/genres", "", "")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Equal(t, []models.Genre{{ID: 1, Name: "Drama"}}, decodeBody[[]models.Genre](t, list))

	authors := serve(t, h, http.MethodGet, "/api/authors", "", "")
	assert.Equal(t, "[]", authors.Body.String())

	created := serve(t, h, http.MethodPost, "/api/authors", `{"name":"Chekhov"}`, testToken)
	require.Equal(t, http.StatusOK, created.Code)
	assert.Equal(t, "Chekhov", decodeBody[models.Author](t, created).Name)

	assert.Equal(t, http.StatusBadRequest, serve(t, h, http.MethodPost, "/api/genres", `{"name":""}`, testToken).Code)
}
