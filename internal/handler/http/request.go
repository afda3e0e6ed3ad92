// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/internal/utils"
	"github.com/MKhiriev/go-book-giveaway/internal/validators"
	"github.com/MKhiriev/go-book-giveaway/models"
)

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
// On failure it has already answered 400 and returns false.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	log := logger.FromRequest(r)

	if err := utils.ReadJSON(w, r, dst); err != nil {
		log.Debug().Err(err).Msg("Invalid JSON was passed")
		http.Error(w, errInvalidJSON.Error(), http.StatusBadRequest)
		return false
	}

	if err := h.validate.Validate(r.Context(), dst); err != nil {
		log.Debug().Err(err).Msg("request validation failed")
		http.Error(w, validationMessage(err), http.StatusBadRequest)
		return false
	}

	return true
}

// validationMessage renders validator errors as "field: rule" pairs.
func validationMessage(err error) string {
	var verr *validators.ValidationError
	if !errors.As(err, &verr) {
		return validators.ErrInvalidRequest.Error()
	}
	return verr.Error()
}

// pathID parses the {id} URL parameter as a positive integer.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// currentUser returns the user stored by the auth middleware. Handlers
// mounted behind it can rely on ok being true.
func currentUser(r *http.Request) (models.User, bool) {
	return utils.GetUserFromContext(r.Context())
}
