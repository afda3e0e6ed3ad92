// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// BookRequest is a request by one user to borrow or receive another
// user's book. A user may hold at most one request per book.
type BookRequest struct {
	ID          int64     `json:"id"`
	BookID      int64     `json:"book_id"`
	RequesterID int64     `json:"requester_id"`
	Location    string    `json:"location"`
	Accepted    bool      `json:"accepted"`
	CreatedAt   time.Time `json:"created_at"`
}

// Owner implements [Owned]. A request belongs to the user who filed it.
func (r BookRequest) Owner() int64 {
	return r.RequesterID
}
