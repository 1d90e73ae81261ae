package domain

import "errors"

// Error kinds returned by the service layer. Handlers map them to HTTP
// status codes at the boundary; nothing below the handlers knows about
// transport codes.
var (
	ErrInvalid      = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
