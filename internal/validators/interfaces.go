// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach the
// services.
//
// [Validator] is the abstraction handlers depend on. [RequestValidator]
// implements it on top of go-playground/validator struct tags and reports
// failures as a [ValidationError] listing the offending JSON fields.
package validators

import "context"

// Validator validates arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
