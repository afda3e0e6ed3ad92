// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-book-giveaway/internal/utils"
	"github.com/MKhiriev/go-book-giveaway/models"
)

func (h *Handler) createBookRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r)

	bookID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.BookRequestCreate
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	request, err := h.services.BookRequestService.CreateRequest(r.Context(), user, bookID, req.Location)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, request, http.StatusCreated)
}

func (h *Handler) listBookRequests(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r)

	bookID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	requests, err := h.services.BookRequestService.ListBookRequests(r.Context(), user, bookID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeRequests(w, requests)
}

func (h *Handler) listMyRequests(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r)

	requests, err := h.services.BookRequestService.ListMyRequests(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeRequests(w, requests)
}

func (h *Handler) acceptBookRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r)

	requestID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	request, err := h.services.BookRequestService.AcceptRequest(r.Context(), user, requestID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, request, http.StatusOK)
}

func (h *Handler) withdrawBookRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r)

	requestID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.BookRequestService.WithdrawRequest(r.Context(), user, requestID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeRequests(w http.ResponseWriter, requests []models.BookRequest) {
	if requests == nil {
		requests = []models.BookRequest{}
	}
	utils.WriteJSON(w, requests, http.StatusOK)
}
