// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

// Server defines the lifecycle contract for the transport server.
//
// [RunServer] blocks until SIGTERM, SIGINT or SIGQUIT arrives (or the
// listener fails) and returns after a graceful shutdown.
type Server interface {
	RunServer()
	Shutdown()
}
