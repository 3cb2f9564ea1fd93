package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a get/update/delete references a
	// missing id. Callers must be able to tell this apart from success.
	ErrNotFound = errors.New("store: record not found")

	// ErrReferentialConflict is returned when deleting a product that is
	// still referenced by an order item.
	ErrReferentialConflict = errors.New("store: record is still referenced")
)

// ValidationError describes a rejected field value. It is returned as a
// typed failure at the store boundary so storage detail never leaks.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("store: invalid %s: %s", e.Field, e.Message)
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
