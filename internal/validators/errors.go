// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrInvalidRequest  = errors.New("invalid data provided")
)

// FieldError describes one failed rule.
type FieldError struct {
	// Field is the JSON name of the field.
	Field string
	Rule  string
	Param string
}

func (f FieldError) String() string {
	if f.Param != "" {
		return fmt.Sprintf("%s: %s=%s", f.Field, f.Rule, f.Param)
	}
	return fmt.Sprintf("%s: %s", f.Field, f.Rule)
}

// ValidationError is returned by [RequestValidator]. It matches
// [ErrInvalidRequest] with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidRequest.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return ErrInvalidRequest.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}
