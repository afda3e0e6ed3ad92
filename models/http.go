// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Request bodies accepted by the REST API. Validation tags are checked at
// the HTTP boundary before any service call.

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Username string `json:"username" validate:"required,notblank,min=3,max=64"`
	Email    string `json:"email" validate:"required,email,max=254"`
	// bcrypt refuses input beyond 72 bytes.
	Password string `json:"password" validate:"required,min=1,maxbytes=72"`
}

// LoginRequest is the body of POST /api/auth/login.
// Identifier holds a username or an email depending on server configuration.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// RefreshRequest is the body of POST /api/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// BookCreateRequest is the body of POST /api/books.
type BookCreateRequest struct {
	Title     string `json:"title" validate:"required,notblank,max=255"`
	Condition string `json:"condition" validate:"max=64"`
	Genre     string `json:"genre" validate:"required,notblank,max=128"`
	Author    string `json:"author" validate:"required,notblank,max=128"`
}

// BookUpdateRequest is the body of PUT /api/books/{id}.
// Absent fields are left unchanged.
type BookUpdateRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,notblank,max=255"`
	Condition *string `json:"condition,omitempty" validate:"omitempty,max=64"`
	Genre     *string `json:"genre,omitempty" validate:"omitempty,notblank,max=128"`
	Author    *string `json:"author,omitempty" validate:"omitempty,notblank,max=128"`
}

// NameRequest is the body of POST /api/genres and POST /api/authors.
type NameRequest struct {
	Name string `json:"name" validate:"required,notblank,max=128"`
}

// BookRequestCreate is the body of POST /api/books/{id}/requests.
type BookRequestCreate struct {
	Location string `json:"location" validate:"required,notblank,max=255"`
}
