// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-book-giveaway/internal/utils"
	"github.com/MKhiriev/go-book-giveaway/models"
)

func (h *Handler) listGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.services.CatalogService.ListGenres(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if genres == nil {
		genres = []models.Genre{}
	}
	utils.WriteJSON(w, genres, http.StatusOK)
}

func (h *Handler) createGenre(w http.ResponseWriter, r *http.Request) {
	var req models.NameRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	genre, err := h.services.CatalogService.GetOrCreateGenre(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, genre, http.StatusOK)
}

func (h *Handler) listAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.services.CatalogService.ListAuthors(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if authors == nil {
		authors = []models.Author{}
	}
	utils.WriteJSON(w, authors, http.StatusOK)
}

func (h *Handler) createAuthor(w http.ResponseWriter, r *http.Request) {
	var req models.NameRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	author, err := h.services.CatalogService.GetOrCreateAuthor(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, author, http.StatusOK)
}
