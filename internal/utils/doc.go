// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helpers used across the
// application: the JWT token codec, the bcrypt password hasher, typed
// context keys for the authenticated user, JSON response writing and the
// resty-based HTTP client.
package utils
