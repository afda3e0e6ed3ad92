// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import "errors"

// Token decode failures returned by [TokenCodec.Decode].
var (
	ErrTokenInvalidSignature = errors.New("token signature is invalid")
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenExpired          = errors.New("token is expired")
)

// ErrInvalidCodecParams is returned by [NewTokenCodec] for an empty secret or
// an unsupported algorithm.
var ErrInvalidCodecParams = errors.New("invalid params for token codec")
