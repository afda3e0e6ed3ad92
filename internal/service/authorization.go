// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/go-book-giveaway/models"

// AuthorizeMutation returns [ErrNotOwner] unless user owns resource.
//
// Existence is the caller's concern: services load the resource first and
// report [ErrNotFound] before ownership is considered.
func AuthorizeMutation(user models.User, resource models.Owned) error {
	if resource.Owner() != user.UserID {
		return ErrNotOwner
	}
	return nil
}
