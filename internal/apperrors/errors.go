// Package apperrors defines the error taxonomy shared by services and
// repositories, so HTTP handlers can map failures to status codes with
// errors.Is / errors.As instead of matching on message strings.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrEmptyCart is returned by checkout when the active cart has no items.
var ErrEmptyCart = errors.New("cart is empty")

// ErrConflict is returned when a write lost against a concurrent update
// and no retry budget remains.
var ErrConflict = errors.New("conflicting concurrent update")

// NotFoundError means the requested resource does not exist or is not
// owned by the caller. Handlers translate it to 404.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// NewNotFound builds a NotFoundError for the given resource and id.
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError means the input was malformed or inconsistent.
// Handlers translate it to 400 with the field detail.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidation builds a ValidationError for the given field.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// InsufficientStockError means a checkout asked for more units than the
// inventory bucket holds. It names the offending variant so the client
// can point at the line.
type InsufficientStockError struct {
	ProductVariantID string
	Requested        int
	Available        int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for variant %s (requested: %d, available: %d)",
		e.ProductVariantID, e.Requested, e.Available)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
