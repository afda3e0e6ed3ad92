// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Owned is implemented by every resource that belongs to exactly one user.
// Ownership is the sole predicate used to authorize mutations.
type Owned interface {
	Owner() int64
}

// Book is a physical book offered for lending or giveaway by its owner.
type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Condition string    `json:"condition"`
	GenreID   int64     `json:"genre_id"`
	Genre     string    `json:"genre,omitempty"`
	AuthorID  int64     `json:"author_id"`
	Author    string    `json:"author,omitempty"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Owner implements [Owned].
func (b Book) Owner() int64 {
	return b.OwnerID
}

// BookUpdate describes a partial update of a book.
// Only non-nil fields are written.
type BookUpdate struct {
	ID        int64
	Title     *string
	Condition *string
	GenreID   *int64
	AuthorID  *int64
}

// Empty reports whether the update carries no field changes.
func (u BookUpdate) Empty() bool {
	return u.Title == nil && u.Condition == nil && u.GenreID == nil && u.AuthorID == nil
}

// BookFilter narrows book listings. Zero fields are ignored.
type BookFilter struct {
	Genre   string
	Author  string
	OwnerID int64
}
