package models

import "errors"

// Validation and lookup failures surfaced to callers as 4xx responses.
// Wrap with fmt.Errorf("%w: detail") to attach the offending field.
var (
	ErrMissingField         = errors.New("missing required fields")
	ErrInvalidCondition     = errors.New("invalid condition")
	ErrInvalidPrice         = errors.New("invalid price")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMissingShippingField = errors.New("missing shipping details")
	ErrNotFound             = errors.New("listing not found")
)
