// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. All of them are answered as a missing
// credential.
var (
	// ErrEmptyAuthorizationHeader is returned when the request carries no
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header is not
	// exactly "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the scheme is present but the token is
	// an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

var (
	errInvalidJSON = errors.New("invalid JSON was passed")
	errInvalidID   = errors.New("invalid id")
	errTooMany     = errors.New("too many requests")
)
