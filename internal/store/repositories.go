// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-book-giveaway/internal/logger"

// Repositories groups every repository the service layer depends on.
type Repositories struct {
	UserRepository        UserRepository
	BookRepository        BookRepository
	CatalogRepository     CatalogRepository
	BookRequestRepository BookRequestRepository
}

// NewRepositories builds all repositories over a single database handle.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db, logger),
		BookRepository:        NewBookRepository(db, logger),
		CatalogRepository:     NewCatalogRepository(db, logger),
		BookRequestRepository: NewBookRequestRepository(db, logger),
	}
}
