// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command line client of the book giveaway
// service.
//
// It wires the cobra command tree to the API adapter and keeps the session
// token pair on disk between invocations.
package client
