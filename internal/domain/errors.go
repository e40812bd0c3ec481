package domain

import "errors"

// Failure kinds surfaced by services. Handlers translate these into HTTP
// status codes; anything unrecognized maps to a 500.
var (
	ErrValidation         = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoToken            = errors.New("no token provided")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidTransition  = errors.New("invalid status transition")
)
