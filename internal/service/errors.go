// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// Authentication and authorization failures. Credential and token errors
// carry deliberately generic messages.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrDuplicateUser      = errors.New("user with this username or email already exists")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrMissingCredential  = errors.New("could not validate credentials")
	ErrInvalidToken       = errors.New("could not validate credentials")
	ErrUnknownSubject     = errors.New("could not validate credentials")

	ErrNotOwner             = errors.New("you are not the owner of this resource")
	ErrNotFound             = errors.New("resource not found")
	ErrSelfRequestForbidden = errors.New("you cannot request your own book")
	ErrDuplicateRequest     = errors.New("you have already requested this book")

	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
