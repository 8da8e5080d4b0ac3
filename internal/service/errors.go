package service

import "errors"

// Service error taxonomy. Handlers map these to HTTP statuses via
// errors.Is; anything else is an unexpected store failure.
var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateAccount   = errors.New("account already registered")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrAlreadyConfirmed   = errors.New("account already confirmed")

	ErrNotFound      = errors.New("resource not found")
	ErrForbidden     = errors.New("operation forbidden")
	ErrAlreadyExists = errors.New("resource already exists")
)
