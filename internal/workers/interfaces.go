// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until the work is finished or ctx is cancelled. Cancellation is
// a normal way to stop a worker and is not reported as an error.
type Worker interface {
	Run(ctx context.Context) error
}
