// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-book-giveaway/internal/logger"
	"github.com/MKhiriev/go-book-giveaway/internal/metrics"
	"github.com/MKhiriev/go-book-giveaway/internal/service"
	"github.com/MKhiriev/go-book-giveaway/internal/utils"
)

const bearerScheme = "Bearer"

// auth is an HTTP middleware that admits only requests carrying a valid
// access token.
//
// The token is taken from "Authorization: Bearer <token>" and resolved via
// [service.AuthService.Authenticate]; the resulting user is stored in the
// request context under [utils.UserCtxKey]. Every rejection (missing or
// malformed header, bad token, unknown subject) is answered with
// 401, the body "could not validate credentials" and
// "WWW-Authenticate: Bearer".
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := getTokenFromAuthHeader(r.Header.Get("Authorization"))
		if err != nil {
			log.Debug().Err(err).Str("func", "*Handler.auth").Msg("no usable credential")
			h.metrics.RecordAuth("token", metrics.AuthFailure)
			writeError(w, r, fmt.Errorf("%w: %w", service.ErrMissingCredential, err))
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			h.metrics.RecordAuth("token", metrics.AuthFailure)
			writeError(w, r, err)
			return
		}

		ctx = utils.WithUser(ctx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the token from an "Authorization" header
// value of the exact form:
//
//	Bearer eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
//
// The scheme keyword is case-sensitive and must be followed by exactly one
// space and a single token.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || scheme != bearerScheme {
		return "", ErrInvalidAuthorizationHeader
	}
	if token == "" {
		return "", ErrEmptyToken
	}
	if strings.ContainsAny(token, " \t") {
		return "", ErrInvalidAuthorizationHeader
	}

	return token, nil
}
