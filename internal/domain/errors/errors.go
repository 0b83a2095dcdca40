package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrValidation         = errors.New("validation failed")
	ErrDraftClosed        = errors.New("draft closed")
	ErrInvalidPreference  = errors.New("invalid preference value")
	ErrEmptyResponse      = errors.New("empty response body")
	ErrUnknownService     = errors.New("unknown service")
)
