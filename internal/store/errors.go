// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when an INSERT into users violates the
	// unique username or email index.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound is returned when a user lookup matches no row.
	ErrUserNotFound = errors.New("no user was found")

	// ErrBookNotFound is returned when a book lookup, update or delete
	// targets an id that does not exist.
	ErrBookNotFound = errors.New("book was not found")

	// ErrRequestNotFound is returned when a book request lookup, update or
	// delete targets an id that does not exist.
	ErrRequestNotFound = errors.New("book request was not found")

	// ErrRequestAlreadyExists is returned when the same user files a second
	// request for the same book.
	ErrRequestAlreadyExists = errors.New("book request already exists")

	// ErrReferenceNotFound is returned when a foreign key points at a row
	// that does not exist (e.g. a book removed between lookup and insert).
	ErrReferenceNotFound = errors.New("referenced row does not exist")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when squirrel cannot render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a statement fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrUnsupportedDriver is returned by [NewDB] for an unknown driver name.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)
