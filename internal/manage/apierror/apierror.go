package apierror

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a requested record or request field does not exist.
var ErrNotFound = errors.New("not found")

// NotFoundError names the field or record type that could not be resolved.
type NotFoundError struct {
	Field string
}

// NotFound constructs a NotFoundError for the provided field.
func NotFound(field string) error {
	return &NotFoundError{Field: strings.TrimSpace(field)}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Field == "" {
		return ErrNotFound.Error()
	}
	return e.Field + " " + ErrNotFound.Error()
}

// Is reports whether target is ErrNotFound so callers can use errors.Is.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// FieldOf returns the field carried by a NotFoundError anywhere in the chain.
func FieldOf(err error) (string, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Field, true
	}
	return "", false
}
