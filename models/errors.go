package models

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")
)

// Import related errors. They all abort the import before anything is written.
var (
	ErrHeaderNotFound        = errors.Wrap(BadParameterError, "header row not found")
	ErrRequiredColumnMissing = errors.Wrap(BadParameterError, "required column missing")
	ErrNoDataFound           = errors.Wrap(BadParameterError, "no store rows found in the file")
	ErrUnknownEncoding       = errors.Wrap(BadParameterError, "unknown csv encoding")
)

// RequiredColumnMissingError names the role the header row was expected to carry.
type RequiredColumnMissingError struct {
	Role string
}

func (e RequiredColumnMissingError) Error() string {
	return fmt.Sprintf("column '%s' not found in the header row", e.Role)
}

func (e RequiredColumnMissingError) Unwrap() error {
	return ErrRequiredColumnMissing
}

func NewRequiredColumnMissingError(role string) error {
	return errors.WithStack(RequiredColumnMissingError{Role: role})
}
