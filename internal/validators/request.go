// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RuleNotBlank rejects strings that are empty after trimming whitespace.
const RuleNotBlank = "notblank"

// RuleMaxBytes limits the encoded length of a string in bytes. The stock
// max rule counts runes.
const RuleMaxBytes = "maxbytes"

type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)
	// registration only fails for an empty tag or a nil func
	_ = validate.RegisterValidation(RuleNotBlank, notBlank)
	_ = validate.RegisterValidation(RuleMaxBytes, maxBytes)

	return &RequestValidator{validate: validate}
}

// Validate implements [Validator]. fields are Go struct field names; when
// given, only those fields are checked.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = v.validate.StructCtx(ctx, obj)
	}
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{}
	}

	result := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		result.Fields = append(result.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
	}
	return result
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(field.Name)
	}
	return name
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

func maxBytes(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("%s: bad param %q", RuleMaxBytes, fl.Param()))
	}
	return len(field.String()) <= limit
}
