package domain

import "errors"

// Sentinel errors shared across services. Handlers and the central error
// handler map these to HTTP status codes; services never return raw
// infrastructure errors to the transport layer.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")

	// ErrNotFound covers both a genuinely absent record and a record owned
	// by another user. Callers must not be able to tell the two apart.
	ErrNotFound = errors.New("record not found")

	ErrConflict   = errors.New("duplicate value for unique field")
	ErrValidation = errors.New("validation failed")

	// ErrCustomerHasShipments blocks deletion of a customer that is still
	// referenced by shipments (restrict semantics).
	ErrCustomerHasShipments = errors.New("customer has associated shipments")
)
