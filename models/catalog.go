// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Genre is a catalog entry that books are classified under.
// Names are unique.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Author is a catalog entry naming who wrote a book.
// Names are unique.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
