// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/internal/utils"
	"github.com/MKhiriev/go-book-giveaway/models"
)

// listBooks supports the optional query filters genre, author and owner
// (a user id).
func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.BookFilter{
		Genre:  query.Get("genre"),
		Author: query.Get("author"),
	}
	if owner := query.Get("owner"); owner != "" {
		ownerID, err := strconv.ParseInt(owner, 10, 64)
		if err != nil || ownerID <= 0 {
			writeError(w, r, errInvalidID)
			return
		}
		filter.OwnerID = ownerID
	}

	books, err := h.services.BookService.ListBooks(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if books == nil {
		books = []models.Book{}
	}

	utils.WriteJSON(w, books, http.StatusOK)
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	book, err := h.services.BookService.GetBook(r.Context(), bookID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, book, http.StatusOK)
}

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r)

	var req models.BookCreateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	book, err := h.services.BookService.CreateBook(r.Context(), user, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/books/"+strconv.FormatInt(book.ID, 10))
	utils.WriteJSON(w, book, http.StatusCreated)
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r)

	bookID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.BookUpdateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	book, err := h.services.BookService.UpdateBook(r.Context(), user, bookID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, book, http.StatusOK)
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r)

	bookID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.BookService.DeleteBook(r.Context(), user, bookID); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("book_id", bookID).Msg("book deleted")
	w.WriteHeader(http.StatusNoContent)
}
