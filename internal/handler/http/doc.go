// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the book giveaway server.
//
// It wires chi routes to the service layer and carries the cross-cutting
// middleware: trace ids, access logging with request metrics, panic
// recovery, request timeouts, CORS, per-IP rate limiting of the credential
// endpoints and bearer-token authentication.
package http
