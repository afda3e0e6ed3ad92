// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// LoginField names the unique user attribute used as the login identifier
// and as the "sub" claim of issued tokens.
type LoginField string

const (
	// LoginFieldUsername makes the username the canonical identifier.
	LoginFieldUsername LoginField = "username"
	// LoginFieldEmail makes the email address the canonical identifier.
	LoginFieldEmail LoginField = "email"
)

// Valid reports whether f is one of the supported lookup fields.
func (f LoginField) Valid() bool {
	return f == LoginFieldUsername || f == LoginFieldEmail
}

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the server-assigned identifier of the user.
	UserID int64 `json:"id"`

	// Username is unique and matched case-sensitively.
	Username string `json:"username"`

	// Email is unique and matched case-sensitively.
	Email string `json:"email"`

	// PasswordHash is the bcrypt digest of the user's password.
	// It is never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Identifier returns the value of the given login field for u.
func (u User) Identifier(field LoginField) string {
	if field == LoginFieldEmail {
		return u.Email
	}
	return u.Username
}
