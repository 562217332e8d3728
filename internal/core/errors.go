package core

import (
	"errors"
	"sort"
	"strings"
)

// ErrorKind classifies a field validation failure.
type ErrorKind string

const (
	RequiredField ErrorKind = "required_field"
	InvalidFormat ErrorKind = "invalid_format"
	InvalidRange  ErrorKind = "invalid_range"
)

var (
	ErrRequiredField = errors.New("required field")
	ErrInvalidFormat = errors.New("invalid format")
	ErrInvalidRange  = errors.New("invalid range")
	ErrValidation    = errors.New("validation failed")
)

// Err returns the sentinel error for the kind.
func (k ErrorKind) Err() error {
	switch k {
	case RequiredField:
		return ErrRequiredField
	case InvalidFormat:
		return ErrInvalidFormat
	case InvalidRange:
		return ErrInvalidRange
	}
	return ErrValidation
}

// FieldError is the failure reported for one form field.
type FieldError struct {
	Kind    ErrorKind
	Message string
}

func (e FieldError) Error() string { return e.Message }
func (e FieldError) Unwrap() error { return e.Kind.Err() }

// FieldErrors maps a field name to its failure. An empty map means valid.
type FieldErrors map[string]FieldError

// Add records a failure for field unless one is already present.
func (fe FieldErrors) Add(field string, kind ErrorKind, message string) {
	if _, ok := fe[field]; ok {
		return
	}
	fe[field] = FieldError{Kind: kind, Message: message}
}

func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Message returns the message for field, or "" when the field is valid.
func (fe FieldErrors) Message(field string) string {
	return fe[field].Message
}

// Err returns nil when there are no failures, otherwise a *ValidationError.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return &ValidationError{Fields: fe}
}

// ValidationError carries every field failure of a rejected draft.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k].Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// FieldErrorsOf extracts the field map from err, or nil.
func FieldErrorsOf(err error) FieldErrors {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
