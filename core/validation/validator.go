// Package validation validates request payloads with go-playground/validator and
// converts failures into domain validation errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"booktracker/core/errs"
	"booktracker/core/models"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for booktracker payloads.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// status_code must be one of the reading status codes
	_ = v.RegisterValidation("status_code", func(fl validator.FieldLevel) bool {
		return models.IsValidStatus(fl.Field().String())
	})

	return &Validator{v: v}
}

// Check validates s. On failure it returns a validation error carrying message
// (the user-facing text) and the field details as cause.
func (v *Validator) Check(s any, message string) error {
	if err := v.v.Struct(s); err != nil {
		return errs.Invalid(message, describe(err))
	}
	return nil
}

// FailedOn reports whether err is a validation failure on the given JSON field and tag.
func FailedOn(err error, field, tag string) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, e := range verrs {
		if e.Field() == field && e.Tag() == tag {
			return true
		}
	}
	return false
}

// describe flattens validator errors into a stable, readable form.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on %s", e.Field(), e.Tag()))
	}
	sort.Strings(parts)
	return fmt.Errorf("%s: %w", strings.Join(parts, "; "), verrs)
}
