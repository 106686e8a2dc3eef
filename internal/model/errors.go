package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated covers missing credentials, unknown accounts and wrong passwords alike.
	ErrUnauthenticated = errors.New("invalid credentials")
	// ErrBasketNotFound is returned when a basket does not exist or belongs to another account.
	ErrBasketNotFound = fmt.Errorf("no such basket: %w", ErrNotFound)
	// ErrProductNotFound is returned when a referenced product does not exist.
	ErrProductNotFound = fmt.Errorf("no such product: %w", ErrNotFound)
	// ErrInvalidItem is the class of malformed or out-of-range basket item fields.
	ErrInvalidItem = errors.New("missing proper product_ref/product_qt")
)

// FieldErrorReason enumerates why a request field was rejected.
type FieldErrorReason int

const (
	// FieldMissing means the field was not supplied.
	FieldMissing FieldErrorReason = iota
	// FieldMalformed means the field could not be parsed.
	FieldMalformed
	// FieldNotPositive means the field parsed but is not strictly greater than zero.
	FieldNotPositive
)

func (r FieldErrorReason) String() string {
	switch r {
	case FieldMissing:
		return "missing"
	case FieldMalformed:
		return "malformed"
	case FieldNotPositive:
		return "not positive"
	default:
		return "invalid"
	}
}

// ItemFieldError describes a rejected basket item field. It always matches ErrInvalidItem.
type ItemFieldError struct {
	Field  string
	Value  string
	Reason FieldErrorReason
}

func (e *ItemFieldError) Error() string {
	switch e.Reason {
	case FieldMissing:
		return fmt.Sprintf("%s is missing", e.Field)
	case FieldMalformed:
		return fmt.Sprintf("%s %q is not an integer", e.Field, e.Value)
	case FieldNotPositive:
		return fmt.Sprintf("%s must be greater than 0, got %s", e.Field, e.Value)
	default:
		return fmt.Sprintf("%s %q is %s", e.Field, e.Value, e.Reason)
	}
}

// Unwrap lets callers match the error against ErrInvalidItem.
func (e *ItemFieldError) Unwrap() error {
	return ErrInvalidItem
}
