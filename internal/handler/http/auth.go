// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/internal/metrics"
	"github.com/MKhiriev/go-book-giveaway/internal/service"
	"github.com/MKhiriev/go-book-giveaway/internal/utils"
	"github.com/MKhiriev/go-book-giveaway/models"
)

const formContentType = "application/x-www-form-urlencoded"

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.SignupRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.services.AuthService.RegisterUser(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.metrics.RecordAuth("signup", metrics.AuthFailure)
		writeError(w, r, err)
		return
	}

	h.metrics.RecordAuth("signup", metrics.AuthSuccess)
	log.Info().Int64("user_id", user.UserID).Msg("user signed up")
	utils.WriteJSON(w, user, http.StatusCreated)
}

// login accepts either a JSON body {identifier, password} or an OAuth2
// password form (username, password).
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), formContentType) {
		r.Body = http.MaxBytesReader(w, r.Body, utils.MaxJSONBodySize)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form was passed", http.StatusBadRequest)
			return
		}
		req = models.LoginRequest{Identifier: r.PostForm.Get("username"), Password: r.PostForm.Get("password")}
		if err := h.validate.Validate(r.Context(), req); err != nil {
			http.Error(w, validationMessage(err), http.StatusBadRequest)
			return
		}
	} else if !h.decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := h.services.AuthService.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.metrics.RecordAuth("login", metrics.AuthFailure)
		}
		writeError(w, r, err)
		return
	}

	h.metrics.RecordAuth("login", metrics.AuthSuccess)
	utils.WriteJSON(w, pair, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := h.services.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.metrics.RecordAuth("refresh", metrics.AuthFailure)
		writeError(w, r, err)
		return
	}

	h.metrics.RecordAuth("refresh", metrics.AuthSuccess)
	utils.WriteJSON(w, pair, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeError(w, r, service.ErrMissingCredential)
		return
	}
	utils.WriteJSON(w, user, http.StatusOK)
}
