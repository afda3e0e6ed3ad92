// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/internal/service"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,

	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrMissingCredential:  http.StatusUnauthorized,
	service.ErrInvalidToken:       http.StatusUnauthorized,
	service.ErrUnknownSubject:     http.StatusUnauthorized,

	service.ErrNotOwner:             http.StatusForbidden,
	service.ErrSelfRequestForbidden: http.StatusForbidden,
	service.ErrNotFound:             http.StatusNotFound,
	service.ErrDuplicateUser:        http.StatusConflict,
	service.ErrDuplicateRequest:     http.StatusConflict,

	errInvalidJSON: http.StatusBadRequest,
	errInvalidID:   http.StatusBadRequest,
	errTooMany:     http.StatusTooManyRequests,
}

// classifyError returns the status for err and the sentinel it matched, or
// 500 and nil.
func classifyError(err error) (int, error) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status, target
		}
	}
	return http.StatusInternalServerError, nil
}

func statusFromError(err error) int {
	status, _ := classifyError(err)
	return status
}

// writeError answers with the status mapped from err. The body is the
// message of the matched sentinel, never the wrapped chain, so internal
// details and token failure reasons stay out of responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, target := classifyError(err)

	message := http.StatusText(status)
	if target != nil {
		message = target.Error()
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", "writeError").Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	http.Error(w, message, status)
}
